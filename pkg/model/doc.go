// Package model defines the database models for the access-governance core.
//
// This package contains GORM models that map to the governance database
// schema, plus the enumerated value types shared across the engine packages.
//
// # Core Models
//
//   - Role: Principals that can hold permission grants
//   - Resource: Protected modules grouped by category
//   - PermissionGrant: Sparse (role, resource) -> level matrix cells
//   - AccessRequest: Access requests with their approval chain and risk
//     assessment
//   - ApprovalStep: Ordered approver decisions belonging to a request
//   - RiskFactor: Named factors the risk score is derived from
//   - Violation: Compliance violations consumed by the aggregator
//   - ComplianceMetric: Per-framework derived compliance scores
//
// # Database Schema
//
// The database uses PostgreSQL with the following key tables:
//
//   - roles: All role identities
//   - resources: All governed resources
//   - permission_grants: Access matrix cells (no rows for level "none")
//   - access_requests: Request lifecycle state, versioned for CAS
//   - approval_steps: Ordered approval chain entries
//   - risk_factors: Stored inputs of each request's risk assessment
//   - violations: Compliance violations keyed by framework
//   - compliance_metrics: Per-framework, per-period derived scores
package model

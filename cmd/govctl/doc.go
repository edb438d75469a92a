// Package main provides govctl, the CLI for the access governance server.
//
// The server manages a role/resource permission matrix, an access request
// approval workflow with ordered approval chains and risk scoring, and
// per-framework compliance metrics derived from violation records.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: persistence interfaces (gorm and memory backends)
//   - pkg/workflow: approval chain sequencing and request lifecycle
//   - pkg/risk: deterministic risk scoring
//   - pkg/compliance: compliance score aggregation
//   - pkg/directory: approver chain resolution
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	govctl db migrate
//
//	# Start the server
//	govctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - GOV_CONFIG_PATH: directory holding accessgov.yml
//   - GOV_TOKEN_SECRET: HS256 secret for API bearer tokens
//   - GOV_AUDIT_ENABLED: set to "true" to emit audit records
//   - GOV_LOG_LEVEL: log level (debug enables SQL logging)
//   - PORT: server port (default: 8000)
package main

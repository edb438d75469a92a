// Package workflow advances access requests through their approval chains.
//
// The sequencing rules live in one place: the pure reducer ApplyDecision,
// which enforces in-order approval, approver matching and short-circuit
// rejection over an immutable step list. The Engine wraps the reducer with
// persistence (optimistic version CAS against the request store), risk
// re-assessment, escalation (administrative and due-date timeout) and bulk
// dispositions with per-id outcomes.
package workflow

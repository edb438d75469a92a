// Package audit provides security audit logging for the governance core.
//
// Events are rendered in RFC5424 syslog format to a writer (stdout by
// default) and optionally persisted to a dedicated audit database when
// AUDIT_DATABASE_URL is set.
//
// Every state transition the core performs has an event type here: grant
// mutations, request creation, approval decisions, escalations, bulk
// dispositions, violation changes and metric recomputations.
package audit

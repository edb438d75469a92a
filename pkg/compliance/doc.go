// Package compliance rolls up violations into per-framework health
// metrics.
//
// The aggregator is read-mostly: it scans violation records for the
// active reporting period, derives a score, status and trend, and
// persists the resulting metric. It never mutates violations. Recompute
// runs are cancelable; a canceled run publishes nothing.
package compliance

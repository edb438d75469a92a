// Package risk derives a numeric risk score and qualitative risk level
// from the attributes of an access request.
//
// Scoring is pure and deterministic: the stored factor list is the source
// of truth and the score is always re-derivable from it. Factor weights
// and level thresholds are policy constants supplied by the caller, not
// hard-coded architecture.
package risk

package audit

import "fmt"

// ViolationEvent represents a violation lifecycle audit event
type ViolationEvent struct {
	ViolationID string
	Framework   string
	Sev         string
	Status      string
	Actor       string
}

func (e ViolationEvent) MessageID() string {
	return "violation"
}

func (e ViolationEvent) Message() string {
	return fmt.Sprintf("violation %s (%s, %s) is %s", e.ViolationID, e.Framework, e.Sev, e.Status)
}

func (e ViolationEvent) Severity() Severity {
	switch e.Sev {
	case "critical":
		return SeverityError
	case "high":
		return SeverityWarning
	default:
		return SeverityNotice
	}
}

func (e ViolationEvent) Facility() int {
	return FacilityAuth
}

func (e ViolationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"violation": e.ViolationID,
			"framework": e.Framework,
			"severity":  e.Sev,
		},
		SDIDAction: {
			"status": e.Status,
		},
	}
	if e.Actor != "" {
		sd[SDIDActor] = map[string]string{"user": e.Actor}
	}
	return sd
}

// RecomputeEvent represents a compliance metric recomputation audit event
type RecomputeEvent struct {
	Framework  string
	Score      float64
	Status     string
	Trend      string
	Violations int
}

func (e RecomputeEvent) MessageID() string {
	return "recompute"
}

func (e RecomputeEvent) Message() string {
	return fmt.Sprintf("compliance score for %s recomputed: %.1f (%s, trend %s, %d violations)",
		e.Framework, e.Score, e.Status, e.Trend, e.Violations)
}

func (e RecomputeEvent) Severity() Severity {
	if e.Status == "error" {
		return SeverityWarning
	}
	return SeverityInfo
}

func (e RecomputeEvent) Facility() int {
	return FacilityAuth
}

func (e RecomputeEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"framework": e.Framework,
		},
		SDIDAction: {
			"operation":  "recompute",
			"score":      fmt.Sprintf("%.1f", e.Score),
			"status":     e.Status,
			"trend":      e.Trend,
			"violations": fmt.Sprintf("%d", e.Violations),
		},
	}
}

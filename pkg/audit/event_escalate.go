package audit

import "fmt"

// EscalationEvent represents a request escalation audit event
type EscalationEvent struct {
	RequestID string
	Actor     string // empty for timeout escalations
	Reason    string // "admin" or "timeout"
}

func (e EscalationEvent) MessageID() string {
	return "escalate"
}

func (e EscalationEvent) Message() string {
	if e.Reason == "timeout" {
		return fmt.Sprintf("request %s escalated: due date passed while pending", e.RequestID)
	}
	return fmt.Sprintf("%s escalated request %s", e.Actor, e.RequestID)
}

func (e EscalationEvent) Severity() Severity {
	return SeverityWarning
}

func (e EscalationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e EscalationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"request": e.RequestID,
		},
		SDIDAction: {
			"operation": "escalate",
			"reason":    e.Reason,
		},
	}
	if e.Actor != "" {
		sd[SDIDActor] = map[string]string{"user": e.Actor}
	}
	return sd
}

// BulkDispositionEvent represents a bulk approval action audit event
type BulkDispositionEvent struct {
	Actor  string
	Action string // "approve", "reject" or "escalate"
	Total  int
	Failed int
}

func (e BulkDispositionEvent) MessageID() string {
	return "bulk"
}

func (e BulkDispositionEvent) Message() string {
	return fmt.Sprintf("%s applied bulk %s to %d requests (%d failed)", e.Actor, e.Action, e.Total, e.Failed)
}

func (e BulkDispositionEvent) Severity() Severity {
	if e.Failed > 0 {
		return SeverityNotice
	}
	return SeverityInfo
}

func (e BulkDispositionEvent) Facility() int {
	return FacilityAuthPriv
}

func (e BulkDispositionEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDActor: {
			"user": e.Actor,
		},
		SDIDAction: {
			"operation": "bulk-" + e.Action,
			"total":     fmt.Sprintf("%d", e.Total),
			"failed":    fmt.Sprintf("%d", e.Failed),
		},
	}
}

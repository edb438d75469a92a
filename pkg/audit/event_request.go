package audit

import "fmt"

// RequestEvent represents an access request creation audit event
type RequestEvent struct {
	RequestID  string
	Requester  string
	ResourceID string
	AccessType string
	Priority   string
	RiskScore  int
	RiskLevel  string
}

func (e RequestEvent) MessageID() string {
	return "request"
}

func (e RequestEvent) Message() string {
	return fmt.Sprintf("%s requested %s access to %s (priority %s, risk %s)",
		e.Requester, e.AccessType, e.ResourceID, e.Priority, e.RiskLevel)
}

func (e RequestEvent) Severity() Severity {
	if e.RiskLevel == "high" {
		return SeverityWarning
	}
	return SeverityInfo
}

func (e RequestEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RequestEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDActor: {
			"user": e.Requester,
		},
		SDIDSubject: {
			"request":  e.RequestID,
			"resource": e.ResourceID,
			"access":   e.AccessType,
		},
		SDIDRisk: {
			"score": fmt.Sprintf("%d", e.RiskScore),
			"level": e.RiskLevel,
		},
	}
}

// DecisionEvent represents an approval chain decision audit event
type DecisionEvent struct {
	RequestID string
	Approver  string
	Decision  string // "approve" or "reject"
	Position  int
	Status    string // resulting request status
}

func (e DecisionEvent) MessageID() string {
	return "decision"
}

func (e DecisionEvent) Message() string {
	return fmt.Sprintf("%s decided %s at step %d of request %s: request is %s",
		e.Approver, e.Decision, e.Position, e.RequestID, e.Status)
}

func (e DecisionEvent) Severity() Severity {
	if e.Decision == "reject" {
		return SeverityNotice
	}
	return SeverityInfo
}

func (e DecisionEvent) Facility() int {
	return FacilityAuthPriv
}

func (e DecisionEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDActor: {
			"user": e.Approver,
		},
		SDIDSubject: {
			"request": e.RequestID,
		},
		SDIDAction: {
			"operation": e.Decision,
			"step":      fmt.Sprintf("%d", e.Position),
			"status":    e.Status,
		},
	}
}

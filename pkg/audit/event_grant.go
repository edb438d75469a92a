package audit

import "fmt"

// GrantEvent represents a permission matrix mutation audit event
type GrantEvent struct {
	Actor      string
	RoleID     string
	ResourceID string
	Level      string
	Operation  string // "set", "cycle" or "bulk"
	CellCount  int    // >1 for bulk operations
}

func (e GrantEvent) MessageID() string {
	return "grant"
}

func (e GrantEvent) Message() string {
	if e.Operation == "bulk" {
		return fmt.Sprintf("%s applied level %s to %d matrix cells", e.Actor, e.Level, e.CellCount)
	}
	return fmt.Sprintf("%s set %s on %s for %s via %s", e.Actor, e.Level, e.ResourceID, e.RoleID, e.Operation)
}

func (e GrantEvent) Severity() Severity {
	return SeverityNotice
}

func (e GrantEvent) Facility() int {
	return FacilityAuthPriv
}

func (e GrantEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDActor: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"role":     e.RoleID,
			"resource": e.ResourceID,
			"level":    e.Level,
		},
		SDIDAction: {
			"operation": e.Operation,
		},
	}
	if e.CellCount > 1 {
		sd[SDIDAction]["cells"] = fmt.Sprintf("%d", e.CellCount)
	}
	return sd
}

// Package notify defines the notification/escalation collaborator
// boundary. The core emits events when a request escalates or a due date
// is imminent; delivery belongs to the outside.
package notify

import (
	"log"

	"github.com/prabaj-wq/accessgov/pkg/model"
)

// Notifier receives escalation and due-date events.
type Notifier interface {
	// RequestEscalated is called after a request transitions to escalated.
	RequestEscalated(req *model.AccessRequest, reason string)

	// DueSoon is called when a pending request's due date is imminent.
	DueSoon(req *model.AccessRequest)
}

// LogNotifier writes notifications to the standard logger. It stands in
// for a real routing integration.
type LogNotifier struct{}

func (LogNotifier) RequestEscalated(req *model.AccessRequest, reason string) {
	log.Printf("request %s escalated (%s): resource=%s requester=%s", req.RequestID, reason, req.ResourceID, req.Requester)
}

func (LogNotifier) DueSoon(req *model.AccessRequest) {
	log.Printf("request %s due soon: due_at=%s", req.RequestID, req.DueAt.Format("2006-01-02T15:04:05Z07:00"))
}

// Discard drops all notifications. Useful in tests.
type Discard struct{}

func (Discard) RequestEscalated(*model.AccessRequest, string) {}

func (Discard) DueSoon(*model.AccessRequest) {}

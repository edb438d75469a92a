package store

import (
	"time"

	"github.com/prabaj-wq/accessgov/pkg/model"
)

// RequestFilter narrows a request listing. Zero values match everything.
// Filtering is a pure read over the current snapshot.
type RequestFilter struct {
	Status           *model.RequestStatus
	Priority         model.Priority
	Department       string
	AccessType       model.AccessType
	SubmittedFrom    *time.Time
	SubmittedUntil   *time.Time
	AssignedApprover string // matches the earliest unresolved chain step
}

// Validate checks the filter's date range.
func (f RequestFilter) Validate() error {
	if f.SubmittedFrom != nil && f.SubmittedUntil != nil && f.SubmittedUntil.Before(*f.SubmittedFrom) {
		return &ValidationError{Field: "date range", Reason: "until precedes from"}
	}
	return nil
}

// RequestsStore abstracts access request persistence. It persists results
// of decisions but never decides business rules itself; chain sequencing
// lives in the workflow package.
type RequestsStore interface {
	// CreateRequest validates required fields and persists a request with
	// its chain and risk factors.
	CreateRequest(req *model.AccessRequest) error

	// FetchRequest retrieves a request with chain and factors, ordered by
	// step/factor position.
	FetchRequest(requestID string) (*model.AccessRequest, error)

	// ListRequests returns requests matching the filter, newest first.
	ListRequests(filter RequestFilter) ([]model.AccessRequest, error)

	// UpdateDecision persists a new status and chain for a request iff its
	// version still equals expectedVersion, bumping the version. A stale
	// version yields a ConflictError and no change.
	UpdateDecision(requestID string, expectedVersion int, status model.RequestStatus, steps []model.ApprovalStep) error

	// UpdateAssessment replaces a request's risk assessment, CAS-guarded
	// the same way as UpdateDecision.
	UpdateAssessment(requestID string, expectedVersion int, score int, level model.RiskLevel, factors []model.RiskFactor) error

	// ListOverdue returns requests still pending whose due timestamp has
	// passed at the supplied instant.
	ListOverdue(now time.Time) ([]model.AccessRequest, error)
}

// CurrentApprover returns the identity assigned to the earliest unresolved
// step of a request, or "" when the chain is complete or frozen by a
// rejection. Steps must be ordered by position.
func CurrentApprover(req *model.AccessRequest) string {
	if req.Status.Terminal() {
		return ""
	}
	for _, s := range req.Steps {
		switch s.Status {
		case model.StepRejected:
			return ""
		case model.StepPending:
			return s.Approver
		}
	}
	return ""
}

// ValidateNewRequest checks the required fields of a request before it is
// persisted. Shared by both store implementations.
func ValidateNewRequest(req *model.AccessRequest) error {
	if req.Requester == "" {
		return &ValidationError{Field: "requester", Reason: "required"}
	}
	if req.ResourceID == "" {
		return &ValidationError{Field: "resource", Reason: "required"}
	}
	if !req.AccessType.Valid() {
		return &ValidationError{Field: "access type", Reason: "must be one of read, write, admin"}
	}
	if req.Justification == "" {
		return &ValidationError{Field: "justification", Reason: "required"}
	}
	if !req.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: "must be one of critical, high, medium, low"}
	}
	return nil
}

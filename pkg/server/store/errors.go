package store

import (
	"fmt"

	"github.com/prabaj-wq/accessgov/pkg/model"
)

// NotFoundError is returned when a role, resource, request or violation id
// does not exist. No partial mutation occurs alongside it.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError is returned for malformed input: a missing required
// field, an out-of-range level or score, or an invalid date range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError is returned when a versioned record was modified
// concurrently. The caller should retry from a fresh read; the core never
// auto-merges.
type ConflictError struct {
	Kind string
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q was modified concurrently", e.Kind, e.ID)
}

// OutOfOrderError is returned when an approval decision is attempted on a
// chain step that is not yet reachable, or by an approver who is not
// assigned the earliest unresolved step.
type OutOfOrderError struct {
	RequestID string
	Approver  string
	Position  int
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("approver %q may not decide request %q: step %d is the earliest unresolved step",
		e.Approver, e.RequestID, e.Position)
}

// StateTransitionError is returned when a decision is attempted on a
// request already in a terminal state. The request is left unchanged.
type StateTransitionError struct {
	RequestID string
	Status    model.RequestStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("request %q is already %s", e.RequestID, e.Status)
}

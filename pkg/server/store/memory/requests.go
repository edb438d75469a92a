package memory

import (
	"sort"
	"time"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// CreateRequest validates required fields and persists a request with its
// chain and risk factors.
func (s *Store) CreateRequest(req *model.AccessRequest) error {
	if err := store.ValidateNewRequest(req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[req.ResourceID]; !ok {
		return &store.NotFoundError{Kind: "resource", ID: req.ResourceID}
	}
	if _, ok := s.requests[req.RequestID]; ok {
		return &store.ConflictError{Kind: "request", ID: req.RequestID}
	}

	stored := cloneRequest(req)
	if stored.Version == 0 {
		stored.Version = 1
	}
	s.requests[req.RequestID] = stored
	req.Version = stored.Version
	return nil
}

// FetchRequest retrieves a request with chain and factors
func (s *Store) FetchRequest(requestID string) (*model.AccessRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[requestID]
	if !ok {
		return nil, &store.NotFoundError{Kind: "request", ID: requestID}
	}
	return cloneRequest(req), nil
}

// ListRequests returns requests matching the filter, newest first.
func (s *Store) ListRequests(filter store.RequestFilter) ([]model.AccessRequest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := []model.AccessRequest{}
	for _, req := range s.requests {
		if !matchesFilter(req, filter) {
			continue
		}
		requests = append(requests, *cloneRequest(req))
	}
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].SubmittedAt.Equal(requests[j].SubmittedAt) {
			return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
		}
		return requests[i].RequestID < requests[j].RequestID
	})
	return requests, nil
}

func matchesFilter(req *model.AccessRequest, filter store.RequestFilter) bool {
	if filter.Status != nil && req.Status != *filter.Status {
		return false
	}
	if filter.Priority != "" && req.Priority != filter.Priority {
		return false
	}
	if filter.Department != "" && req.Department != filter.Department {
		return false
	}
	if filter.AccessType != "" && req.AccessType != filter.AccessType {
		return false
	}
	if filter.SubmittedFrom != nil && req.SubmittedAt.Before(*filter.SubmittedFrom) {
		return false
	}
	if filter.SubmittedUntil != nil && !req.SubmittedAt.Before(*filter.SubmittedUntil) {
		return false
	}
	if filter.AssignedApprover != "" && store.CurrentApprover(req) != filter.AssignedApprover {
		return false
	}
	return true
}

// UpdateDecision persists a new status and chain for a request iff its
// version still equals expectedVersion.
func (s *Store) UpdateDecision(requestID string, expectedVersion int, status model.RequestStatus, steps []model.ApprovalStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return &store.NotFoundError{Kind: "request", ID: requestID}
	}
	if req.Version != expectedVersion {
		return &store.ConflictError{Kind: "request", ID: requestID}
	}

	req.Status = status
	if steps != nil {
		copied := make([]model.ApprovalStep, len(steps))
		copy(copied, steps)
		for i := range copied {
			copied[i].RequestID = requestID
		}
		req.Steps = copied
	}
	req.Version++
	return nil
}

// UpdateAssessment replaces a request's risk assessment, CAS-guarded the
// same way as UpdateDecision.
func (s *Store) UpdateAssessment(requestID string, expectedVersion int, score int, level model.RiskLevel, factors []model.RiskFactor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return &store.NotFoundError{Kind: "request", ID: requestID}
	}
	if req.Version != expectedVersion {
		return &store.ConflictError{Kind: "request", ID: requestID}
	}

	req.RiskScore = score
	req.RiskLevel = level
	copied := make([]model.RiskFactor, len(factors))
	copy(copied, factors)
	for i := range copied {
		copied[i].RequestID = requestID
		copied[i].Position = i
	}
	req.Factors = copied
	req.Version++
	return nil
}

// ListOverdue returns requests still pending whose due timestamp has passed
// at the supplied instant.
func (s *Store) ListOverdue(now time.Time) ([]model.AccessRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := []model.AccessRequest{}
	for _, req := range s.requests {
		if req.Status == model.StatusPending && !req.DueAt.After(now) {
			requests = append(requests, *cloneRequest(req))
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].DueAt.Before(requests[j].DueAt) })
	return requests, nil
}

func cloneRequest(req *model.AccessRequest) *model.AccessRequest {
	clone := *req
	clone.Steps = make([]model.ApprovalStep, len(req.Steps))
	copy(clone.Steps, req.Steps)
	clone.Factors = make([]model.RiskFactor, len(req.Factors))
	copy(clone.Factors, req.Factors)
	return &clone
}

package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prabaj-wq/accessgov/pkg/audit"
	"github.com/prabaj-wq/accessgov/pkg/directory"
	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/notify"
	"github.com/prabaj-wq/accessgov/pkg/risk"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// Default due windows per priority, applied when a request carries no
// explicit due timestamp.
var dueWindows = map[model.Priority]time.Duration{
	model.PriorityCritical: 24 * time.Hour,
	model.PriorityHigh:     48 * time.Hour,
	model.PriorityMedium:   5 * 24 * time.Hour,
	model.PriorityLow:      7 * 24 * time.Hour,
}

// Engine advances access requests through their lifecycle. All business
// rules live here or in the chain reducer; the request store only persists
// outcomes.
type Engine struct {
	requests store.RequestsStore
	catalog  store.CatalogStore
	resolver directory.Resolver
	notifier notify.Notifier
	policy   func() risk.Policy

	now   func() time.Time
	newID func() string
}

// NewEngine creates an approval engine.
func NewEngine(
	requests store.RequestsStore,
	catalog store.CatalogStore,
	resolver directory.Resolver,
	notifier notify.Notifier,
	policy func() risk.Policy,
) *Engine {
	return &Engine{
		requests: requests,
		catalog:  catalog,
		resolver: resolver,
		notifier: notifier,
		policy:   policy,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithClock overrides the engine's time source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithIDGenerator overrides the engine's request id source.
func (e *Engine) WithIDGenerator(newID func() string) *Engine {
	e.newID = newID
	return e
}

// CreateInput carries the caller-supplied fields of a new access request.
type CreateInput struct {
	Requester     string
	RequesterRole string
	Department    string
	ResourceID    string
	AccessType    model.AccessType
	Priority      model.Priority
	Justification string
	DueAt         time.Time // zero means derive from priority
}

// Create validates the input, seeds the immutable approval chain from the
// directory resolver, derives the risk assessment, and persists the
// request in status pending.
func (e *Engine) Create(input CreateInput) (*model.AccessRequest, error) {
	now := e.now()

	req := &model.AccessRequest{
		RequestID:     e.newID(),
		Requester:     input.Requester,
		RequesterRole: input.RequesterRole,
		Department:    input.Department,
		ResourceID:    input.ResourceID,
		AccessType:    input.AccessType,
		Priority:      input.Priority,
		Justification: input.Justification,
		Status:        model.StatusPending,
		SubmittedAt:   now,
		DueAt:         input.DueAt,
		Version:       1,
	}
	if err := store.ValidateNewRequest(req); err != nil {
		return nil, err
	}
	if req.DueAt.IsZero() {
		req.DueAt = now.Add(dueWindows[req.Priority])
	}

	resource, err := e.catalog.FetchResource(req.ResourceID)
	if err != nil {
		return nil, err
	}

	approvers, err := e.resolver.ApproversFor(input.RequesterRole)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve approver chain for role %q: %w", input.RequesterRole, err)
	}
	if len(approvers) == 0 {
		return nil, &store.ValidationError{Field: "approval chain", Reason: "no approvers resolved for requester role"}
	}
	for i, a := range approvers {
		req.Steps = append(req.Steps, model.ApprovalStep{
			RequestID:    req.RequestID,
			Position:     i,
			Approver:     a.Identity,
			ApproverRole: a.Role,
			Status:       model.StepPending,
		})
	}

	assessment := e.assess(req, resource)
	req.RiskScore = assessment.Score
	req.RiskLevel = assessment.Level
	req.Factors = assessment.Factors

	if err := e.requests.CreateRequest(req); err != nil {
		return nil, err
	}

	audit.Log(audit.RequestEvent{
		RequestID:  req.RequestID,
		Requester:  req.Requester,
		ResourceID: req.ResourceID,
		AccessType: string(req.AccessType),
		Priority:   string(req.Priority),
		RiskScore:  req.RiskScore,
		RiskLevel:  string(req.RiskLevel),
	})
	return req, nil
}

func (e *Engine) assess(req *model.AccessRequest, resource *model.Resource) risk.Assessment {
	requesterClass := model.ClassificationStandard
	if role, err := e.catalog.FetchRole(req.RequesterRole); err == nil {
		requesterClass = role.Classification
	}
	factors := risk.DeriveFactors(req, resource, requesterClass)
	return risk.Assess(factors, e.policy())
}

// Approve records an approval by the supplied approver on the request's
// earliest unresolved step.
func (e *Engine) Approve(requestID, approver, comment string) (*model.AccessRequest, error) {
	return e.decide(requestID, approver, DecisionApprove, comment)
}

// Reject records a rejection. The request becomes rejected immediately;
// later steps stay pending.
func (e *Engine) Reject(requestID, approver, comment string) (*model.AccessRequest, error) {
	return e.decide(requestID, approver, DecisionReject, comment)
}

func (e *Engine) decide(requestID, approver string, decision Decision, comment string) (*model.AccessRequest, error) {
	req, err := e.requests.FetchRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, &store.StateTransitionError{RequestID: requestID, Status: req.Status}
	}

	steps, status, position, err := ApplyDecision(req.Steps, requestID, approver, decision, comment, e.now())
	if err != nil {
		return nil, err
	}
	// A mid-chain approval on an escalated request keeps it escalated;
	// escalation only resolves on a terminal decision.
	if status == model.StatusPending && req.Status == model.StatusEscalated {
		status = model.StatusEscalated
	}

	if err := e.requests.UpdateDecision(requestID, req.Version, status, steps); err != nil {
		return nil, err
	}

	audit.Log(audit.DecisionEvent{
		RequestID: requestID,
		Approver:  approver,
		Decision:  string(decision),
		Position:  position,
		Status:    status.String(),
	})

	return e.requests.FetchRequest(requestID)
}

// Escalate force-transitions a pending request to escalated. The chain is
// untouched; only the top-level status changes, and the notifier is told
// so the request can be re-routed to a higher-authority queue.
func (e *Engine) Escalate(requestID, actor, reason string) (*model.AccessRequest, error) {
	req, err := e.requests.FetchRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.StatusPending {
		return nil, &store.StateTransitionError{RequestID: requestID, Status: req.Status}
	}

	if err := e.requests.UpdateDecision(requestID, req.Version, model.StatusEscalated, req.Steps); err != nil {
		return nil, err
	}

	updated, err := e.requests.FetchRequest(requestID)
	if err != nil {
		return nil, err
	}
	e.notifier.RequestEscalated(updated, reason)
	audit.Log(audit.EscalationEvent{RequestID: requestID, Actor: actor, Reason: reason})
	return updated, nil
}

// Reassess recomputes a request's risk assessment from its current
// attributes. This is the only path that replaces a stored assessment.
func (e *Engine) Reassess(requestID string) (*model.AccessRequest, error) {
	req, err := e.requests.FetchRequest(requestID)
	if err != nil {
		return nil, err
	}

	resource, err := e.catalog.FetchResource(req.ResourceID)
	if err != nil {
		return nil, err
	}
	assessment := e.assess(req, resource)

	if err := e.requests.UpdateAssessment(requestID, req.Version, assessment.Score, assessment.Level, assessment.Factors); err != nil {
		return nil, err
	}
	return e.requests.FetchRequest(requestID)
}

// DispositionResult is the per-request outcome of a bulk action.
type DispositionResult struct {
	RequestID string
	Status    model.RequestStatus
	Err       error
}

// BulkApprove applies Approve to every id. Partial failure is reported
// per id: one terminal request never blocks disposition of the others.
func (e *Engine) BulkApprove(requestIDs []string, approver, comment string) []DispositionResult {
	return e.bulk("approve", requestIDs, func(id string) (*model.AccessRequest, error) {
		return e.Approve(id, approver, comment)
	}, approver)
}

// BulkReject applies Reject to every id with per-id outcomes.
func (e *Engine) BulkReject(requestIDs []string, approver, comment string) []DispositionResult {
	return e.bulk("reject", requestIDs, func(id string) (*model.AccessRequest, error) {
		return e.Reject(id, approver, comment)
	}, approver)
}

// BulkEscalate applies Escalate to every id with per-id outcomes.
func (e *Engine) BulkEscalate(requestIDs []string, actor, reason string) []DispositionResult {
	return e.bulk("escalate", requestIDs, func(id string) (*model.AccessRequest, error) {
		return e.Escalate(id, actor, reason)
	}, actor)
}

func (e *Engine) bulk(action string, requestIDs []string, apply func(string) (*model.AccessRequest, error), actor string) []DispositionResult {
	results := make([]DispositionResult, 0, len(requestIDs))
	failed := 0
	for _, id := range requestIDs {
		req, err := apply(id)
		result := DispositionResult{RequestID: id, Err: err}
		if err != nil {
			failed++
		} else {
			result.Status = req.Status
		}
		results = append(results, result)
	}

	audit.Log(audit.BulkDispositionEvent{
		Actor:  actor,
		Action: action,
		Total:  len(requestIDs),
		Failed: failed,
	})
	return results
}

// SweepOverdue escalates every request whose due date has passed while
// still pending, and emits due-soon notifications for pending requests
// inside the warning window. Status is re-checked through the CAS update,
// never trusted from the listing snapshot.
func (e *Engine) SweepOverdue(dueSoonWindow time.Duration) []DispositionResult {
	now := e.now()

	overdue, err := e.requests.ListOverdue(now)
	if err != nil {
		return []DispositionResult{{Err: err}}
	}

	var results []DispositionResult
	for _, req := range overdue {
		_, err := e.Escalate(req.RequestID, "", "timeout")
		results = append(results, DispositionResult{
			RequestID: req.RequestID,
			Status:    model.StatusEscalated,
			Err:       err,
		})
	}

	if dueSoonWindow > 0 {
		pending := model.StatusPending
		reqs, err := e.requests.ListRequests(store.RequestFilter{Status: &pending})
		if err == nil {
			for i := range reqs {
				if reqs[i].DueAt.After(now) && reqs[i].DueAt.Before(now.Add(dueSoonWindow)) {
					e.notifier.DueSoon(&reqs[i])
				}
			}
		}
	}
	return results
}

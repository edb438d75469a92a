package workflow

import (
	"time"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// Decision is a single approver's verdict on their chain step.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ApplyDecision applies one approver decision to an approval chain and
// returns the new chain, the resulting request status and the index of the
// decided step (-1 when no step was decided). The input chain is never
// mutated.
//
// Rules enforced here, and only here:
//   - steps decide strictly in chain order; the only actionable step is
//     the earliest one still pending
//   - the caller must be that step's assigned approver, otherwise
//     OutOfOrderError
//   - a rejection makes the whole request rejected immediately; later
//     steps stay pending forever, recording what was never reached
//   - approving the final step makes the whole request approved
func ApplyDecision(steps []model.ApprovalStep, requestID, approver string, decision Decision, comment string, now time.Time) ([]model.ApprovalStep, model.RequestStatus, int, error) {
	next := make([]model.ApprovalStep, len(steps))
	copy(next, steps)

	idx := -1
	for i := range next {
		if next[i].Status == model.StepRejected {
			// A frozen chain: the request is already rejected.
			return nil, model.StatusRejected, -1, &store.StateTransitionError{
				RequestID: requestID,
				Status:    model.StatusRejected,
			}
		}
		if next[i].Status == model.StepPending {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Every step approved: the request is already approved.
		return nil, model.StatusApproved, -1, &store.StateTransitionError{
			RequestID: requestID,
			Status:    model.StatusApproved,
		}
	}

	if next[idx].Approver != approver {
		return nil, model.StatusPending, -1, &store.OutOfOrderError{
			RequestID: requestID,
			Approver:  approver,
			Position:  idx,
		}
	}

	decidedAt := now
	next[idx].Comment = comment
	next[idx].DecidedAt = &decidedAt

	if decision == DecisionReject {
		next[idx].Status = model.StepRejected
		return next, model.StatusRejected, idx, nil
	}

	next[idx].Status = model.StepApproved
	if idx == len(next)-1 {
		return next, model.StatusApproved, idx, nil
	}
	return next, model.StatusPending, idx, nil
}

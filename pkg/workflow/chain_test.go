package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

func chainOf(statuses ...model.StepStatus) []model.ApprovalStep {
	approvers := []string{"alice", "bob", "carol"}
	steps := make([]model.ApprovalStep, len(statuses))
	for i, status := range statuses {
		steps[i] = model.ApprovalStep{
			RequestID: "req-1",
			Position:  i,
			Approver:  approvers[i],
			Status:    status,
		}
	}
	return steps
}

func TestApplyDecision(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first approver approves in order", func(t *testing.T) {
		steps := chainOf(model.StepPending, model.StepPending)

		next, status, decided, err := ApplyDecision(steps, "req-1", "alice", DecisionApprove, "fine", now)

		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, status)
		assert.Equal(t, 0, decided)
		assert.Equal(t, model.StepApproved, next[0].Status)
		assert.Equal(t, "fine", next[0].Comment)
		require.NotNil(t, next[0].DecidedAt)
		assert.Equal(t, now, *next[0].DecidedAt)
		assert.Equal(t, model.StepPending, next[1].Status)
	})

	t.Run("approving the final step approves the request", func(t *testing.T) {
		steps := chainOf(model.StepApproved, model.StepPending)

		next, status, decided, err := ApplyDecision(steps, "req-1", "bob", DecisionApprove, "", now)

		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, status)
		assert.Equal(t, 1, decided)
		assert.Equal(t, model.StepApproved, next[1].Status)
	})

	t.Run("second approver may not act before the first", func(t *testing.T) {
		steps := chainOf(model.StepPending, model.StepPending)

		_, _, decided, err := ApplyDecision(steps, "req-1", "bob", DecisionApprove, "", now)
		assert.Equal(t, -1, decided)

		var outOfOrder *store.OutOfOrderError
		require.ErrorAs(t, err, &outOfOrder)
		assert.Equal(t, "bob", outOfOrder.Approver)
		assert.Equal(t, 0, outOfOrder.Position)
	})

	t.Run("unknown approver is out of order", func(t *testing.T) {
		steps := chainOf(model.StepPending)

		_, _, _, err := ApplyDecision(steps, "req-1", "mallory", DecisionApprove, "", now)

		var outOfOrder *store.OutOfOrderError
		assert.ErrorAs(t, err, &outOfOrder)
	})

	t.Run("rejection short-circuits and later steps stay pending", func(t *testing.T) {
		steps := chainOf(model.StepApproved, model.StepPending, model.StepPending)

		next, status, decided, err := ApplyDecision(steps, "req-1", "bob", DecisionReject, "too risky", now)

		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, status)
		assert.Equal(t, 1, decided)
		assert.Equal(t, model.StepRejected, next[1].Status)
		assert.Equal(t, model.StepPending, next[2].Status)
		assert.Nil(t, next[2].DecidedAt)
	})

	t.Run("frozen chain rejects further decisions", func(t *testing.T) {
		steps := chainOf(model.StepApproved, model.StepRejected, model.StepPending)

		_, _, _, err := ApplyDecision(steps, "req-1", "carol", DecisionApprove, "", now)

		var transition *store.StateTransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, model.StatusRejected, transition.Status)
	})

	t.Run("fully approved chain rejects further decisions", func(t *testing.T) {
		steps := chainOf(model.StepApproved, model.StepApproved)

		_, _, _, err := ApplyDecision(steps, "req-1", "alice", DecisionApprove, "", now)

		var transition *store.StateTransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, model.StatusApproved, transition.Status)
	})

	t.Run("input chain is never mutated", func(t *testing.T) {
		steps := chainOf(model.StepPending, model.StepPending)

		_, _, _, err := ApplyDecision(steps, "req-1", "alice", DecisionApprove, "", now)

		require.NoError(t, err)
		assert.Equal(t, model.StepPending, steps[0].Status)
		assert.Nil(t, steps[0].DecidedAt)
	})
}

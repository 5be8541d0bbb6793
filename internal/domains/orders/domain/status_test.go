package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAllowedPairs(t *testing.T) {
	allowed := []struct {
		from Status
		to   Status
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusShipped},
		{StatusConfirmed, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range allowed {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			next, err := Transition(tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.to, next)
		})
	}
}

func TestTransitionRejectsEveryOtherPair(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			if from.CanTransitionTo(to) {
				continue
			}
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				_, err := Transition(from, to)
				require.Error(t, err)
				var transitionErr *InvalidTransitionError
				require.True(t, errors.As(err, &transitionErr))
				assert.Equal(t, from, transitionErr.From)
				assert.Equal(t, to, transitionErr.To)
			})
		}
	}
}

func TestTransitionSelfLoopRejected(t *testing.T) {
	_, err := Transition(StatusPending, StatusPending)
	require.Error(t, err)
}

func TestTransitionUnknownStatusRejected(t *testing.T) {
	_, err := Transition(StatusPending, Status("archived"))
	require.Error(t, err)

	_, err = Transition(Status("unknown"), StatusConfirmed)
	require.Error(t, err)
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
	assert.False(t, Status("archived").IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("archived"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("PENDING"))
}

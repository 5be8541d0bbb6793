package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	notifapp "github.com/Apurer/go-order-tracker/internal/domains/notifications/application"
	ordersdomain "github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

func executeWorkflow(t *testing.T, send func(ctx context.Context, input notifapp.DispatchInput) (notifapp.Outcome, error)) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(send, activity.RegisterOptions{Name: SendNotificationActivityName})
	env.ExecuteWorkflow(OrderNotificationWorkflow, notifapp.DispatchInput{
		OrderID: uuid.New(),
		Event:   ordersdomain.EventCreated,
	})
	require.True(t, env.IsWorkflowCompleted())
	return env
}

func TestWorkflowCompletesOnFirstAttempt(t *testing.T) {
	attempts := 0
	env := executeWorkflow(t, func(context.Context, notifapp.DispatchInput) (notifapp.Outcome, error) {
		attempts++
		return notifapp.Outcome{Status: notifapp.OutcomeSent, OrderNumber: "ORD-A3X7K9"}, nil
	})

	require.NoError(t, env.GetWorkflowError())
	var outcome notifapp.Outcome
	require.NoError(t, env.GetWorkflowResult(&outcome))
	assert.Equal(t, notifapp.OutcomeSent, outcome.Status)
	assert.Equal(t, 1, attempts)
}

func TestWorkflowRetriesTransportFailures(t *testing.T) {
	attempts := 0
	env := executeWorkflow(t, func(context.Context, notifapp.DispatchInput) (notifapp.Outcome, error) {
		attempts++
		if attempts < 3 {
			return notifapp.Outcome{}, errors.New("connection reset")
		}
		return notifapp.Outcome{Status: notifapp.OutcomeSent, OrderNumber: "ORD-A3X7K9"}, nil
	})

	require.NoError(t, env.GetWorkflowError())
	var outcome notifapp.Outcome
	require.NoError(t, env.GetWorkflowResult(&outcome))
	assert.Equal(t, notifapp.OutcomeSent, outcome.Status)
	assert.Equal(t, 3, attempts, "two failures then success within the retry budget")
}

func TestWorkflowExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	env := executeWorkflow(t, func(context.Context, notifapp.DispatchInput) (notifapp.Outcome, error) {
		attempts++
		return notifapp.Outcome{}, errors.New("connection reset")
	})

	require.Error(t, env.GetWorkflowError())
	assert.Equal(t, 4, attempts, "the original attempt plus three retries")
}

func TestWorkflowDoesNotRetryTerminalOutcomes(t *testing.T) {
	attempts := 0
	env := executeWorkflow(t, func(context.Context, notifapp.DispatchInput) (notifapp.Outcome, error) {
		attempts++
		return notifapp.Outcome{Status: notifapp.OutcomeSkipped, Reason: notifapp.ReasonDisabled}, nil
	})

	require.NoError(t, env.GetWorkflowError())
	var outcome notifapp.Outcome
	require.NoError(t, env.GetWorkflowResult(&outcome))
	assert.Equal(t, notifapp.OutcomeSkipped, outcome.Status)
	assert.Equal(t, notifapp.ReasonDisabled, outcome.Reason)
	assert.Equal(t, 1, attempts)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_OnlineHappyPath(t *testing.T) {
	steps := []PaymentStatus{
		PaymentStatusIdle,
		PaymentStatusPreparing,
		PaymentStatusAwaitingUser,
		PaymentStatusVerifying,
		PaymentStatusCommitted,
	}
	for i := 0; i < len(steps)-1; i++ {
		assert.True(t, CanTransitionTo(steps[i], steps[i+1]),
			"%s -> %s should be allowed", steps[i], steps[i+1])
	}
}

func TestCanTransitionTo_CashOnDeliverySkipsGateway(t *testing.T) {
	assert.True(t, CanTransitionTo(PaymentStatusIdle, PaymentStatusCommitted))
}

func TestCanTransitionTo_NoOrderBeforeVerification(t *testing.T) {
	// Committed is reachable only from Verifying or directly from Idle.
	assert.False(t, CanTransitionTo(PaymentStatusPreparing, PaymentStatusCommitted))
	assert.False(t, CanTransitionTo(PaymentStatusAwaitingUser, PaymentStatusCommitted))
}

func TestCanTransitionTo_CancelOnlyWhileAwaitingUser(t *testing.T) {
	assert.True(t, CanTransitionTo(PaymentStatusAwaitingUser, PaymentStatusCancelled))
	assert.False(t, CanTransitionTo(PaymentStatusVerifying, PaymentStatusCancelled))
	assert.False(t, CanTransitionTo(PaymentStatusIdle, PaymentStatusCancelled))
}

func TestCanTransitionTo_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []PaymentStatus{PaymentStatusCommitted, PaymentStatusCancelled, PaymentStatusFailed} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range []PaymentStatus{
			PaymentStatusIdle, PaymentStatusPreparing, PaymentStatusAwaitingUser,
			PaymentStatusVerifying, PaymentStatusCommitted, PaymentStatusCancelled, PaymentStatusFailed,
		} {
			assert.False(t, CanTransitionTo(terminal, next),
				"%s -> %s should be rejected", terminal, next)
		}
	}
}

func TestPaymentIntentTransition_GuardsIllegalMoves(t *testing.T) {
	intent := &PaymentIntent{Status: PaymentStatusIdle}

	assert.True(t, intent.Transition(PaymentStatusPreparing))
	assert.Equal(t, PaymentStatusPreparing, intent.Status)

	assert.False(t, intent.Transition(PaymentStatusCommitted))
	assert.Equal(t, PaymentStatusPreparing, intent.Status)
}

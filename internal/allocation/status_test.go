package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFlowForwardWalk(t *testing.T) {
	chain := []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusServed}

	require.Equal(t, StatusPending, FlowOrder.Initial())
	for i := 0; i < len(chain)-1; i++ {
		assert.NoError(t, FlowOrder.Transition(chain[i], chain[i+1]),
			"%s -> %s should be legal", chain[i], chain[i+1])
	}
	assert.True(t, FlowOrder.Terminal(StatusServed))
}

func TestBookingFlowForwardWalk(t *testing.T) {
	require.Equal(t, StatusConfirmed, FlowBooking.Initial())
	assert.NoError(t, FlowBooking.Transition(StatusConfirmed, StatusInProgress))
	assert.NoError(t, FlowBooking.Transition(StatusInProgress, StatusCompleted))
	assert.True(t, FlowBooking.Terminal(StatusCompleted))
}

func TestCancelFromEveryNonTerminalState(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady} {
		assert.NoError(t, FlowOrder.Transition(s, StatusCancelled), "cancel from %s", s)
	}
	for _, s := range []Status{StatusConfirmed, StatusInProgress} {
		assert.NoError(t, FlowBooking.Transition(s, StatusCancelled), "cancel from %s", s)
	}
}

func TestTerminalStatesAbsorb(t *testing.T) {
	targets := []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusServed, StatusCancelled}
	for _, from := range []Status{StatusServed, StatusCancelled} {
		for _, to := range targets {
			assert.ErrorIs(t, FlowOrder.Transition(from, to), ErrIllegalTransition,
				"%s -> %s must be rejected", from, to)
		}
	}
	assert.ErrorIs(t, FlowBooking.Transition(StatusCompleted, StatusInProgress), ErrIllegalTransition)
}

func TestSkippingStatesIsIllegal(t *testing.T) {
	tests := []struct{ from, to Status }{
		{StatusPending, StatusPreparing},
		{StatusPending, StatusServed},
		{StatusConfirmed, StatusReady},
		{StatusReady, StatusPreparing}, // backwards
		{StatusServed, StatusPreparing},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, FlowOrder.Transition(tt.from, tt.to), ErrIllegalTransition,
			"%s -> %s must be rejected", tt.from, tt.to)
	}
}

func TestUnknownStatusIsIllegal(t *testing.T) {
	assert.ErrorIs(t, FlowOrder.Transition(StatusPending, Status("SHIPPED")), ErrIllegalTransition)
	// booking flow does not know the kitchen states
	assert.ErrorIs(t, FlowBooking.Transition(StatusConfirmed, StatusPreparing), ErrIllegalTransition)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("PREPARING")
	require.True(t, ok)
	assert.Equal(t, StatusPreparing, s)

	_, ok = ParseStatus("preparing")
	assert.False(t, ok, "statuses are case sensitive upper-case tokens")

	_, ok = ParseStatus("ANYTHING")
	assert.False(t, ok)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionFor_HappyPath(t *testing.T) {
	tests := []struct {
		action        ContractAction
		from          ContractStatus
		to            ContractStatus
		actor         PartyRole
		requestStatus RequestStatus
	}{
		{ContractActionAccept, ContractStatusProposed, ContractStatusAccepted, PartySender, RequestStatusAccepted},
		{ContractActionPickup, ContractStatusAccepted, ContractStatusPickedUp, PartyCarrier, RequestStatusInTransit},
		{ContractActionDeliver, ContractStatusPickedUp, ContractStatusDelivered, PartySender, RequestStatusDelivered},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			rule, ok := TransitionFor(tt.action, tt.from)
			require.True(t, ok)
			assert.Equal(t, tt.to, rule.To)
			assert.Equal(t, tt.actor, rule.Actor)
			assert.Equal(t, tt.requestStatus, rule.RequestStatus)
		})
	}
}

func TestTransitionFor_CancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []ContractStatus{ContractStatusProposed, ContractStatusAccepted, ContractStatusPickedUp} {
		rule, ok := TransitionFor(ContractActionCancel, from)
		require.True(t, ok, "cancel from %s", from)
		assert.Equal(t, ContractStatusCancelled, rule.To)
		assert.Equal(t, PartyAny, rule.Actor)
		assert.Equal(t, RequestStatusCancelled, rule.RequestStatus)
	}
}

func TestTransitionFor_TerminalStatesRejectEverything(t *testing.T) {
	actions := []ContractAction{ContractActionAccept, ContractActionPickup, ContractActionDeliver, ContractActionCancel}
	for _, from := range []ContractStatus{ContractStatusDelivered, ContractStatusCancelled} {
		for _, action := range actions {
			_, ok := TransitionFor(action, from)
			assert.False(t, ok, "%s from %s must be rejected", action, from)
		}
	}
}

func TestTransitionFor_OutOfOrder(t *testing.T) {
	// Доставка до забора и забор до принятия невозможны
	_, ok := TransitionFor(ContractActionDeliver, ContractStatusAccepted)
	assert.False(t, ok)

	_, ok = TransitionFor(ContractActionPickup, ContractStatusProposed)
	assert.False(t, ok)

	_, ok = TransitionFor(ContractActionAccept, ContractStatusAccepted)
	assert.False(t, ok)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, ContractStatusDelivered.IsTerminal())
	assert.True(t, ContractStatusCancelled.IsTerminal())
	assert.False(t, ContractStatusProposed.IsTerminal())
	assert.False(t, ContractStatusAccepted.IsTerminal())
	assert.False(t, ContractStatusPickedUp.IsTerminal())
}

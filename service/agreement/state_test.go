package agreement

import (
	"testing"

	"carrental/model"

	"github.com/stretchr/testify/require"
)

func TestNextStatus_AllowedEdges(t *testing.T) {
	cases := []struct {
		from model.AgreementStatus
		ev   Event
		to   model.AgreementStatus
	}{
		{model.AgreementPending, EventApprove, model.AgreementApproved},
		{model.AgreementPending, EventReject, model.AgreementRejected},
		{model.AgreementPending, EventCancel, model.AgreementCancelled},
		{model.AgreementApproved, EventActivate, model.AgreementActive},
		{model.AgreementApproved, EventCancel, model.AgreementCancelled},
		{model.AgreementActive, EventFinalize, model.AgreementFinalized},
		{model.AgreementActive, EventCancel, model.AgreementCancelled},
	}
	for _, tc := range cases {
		got, err := nextStatus(tc.from, tc.ev)
		require.NoError(t, err, "%s + %s", tc.from, tc.ev)
		require.Equal(t, tc.to, got)
	}
}

func TestNextStatus_TerminalStatesRejectEverything(t *testing.T) {
	terminals := []model.AgreementStatus{
		model.AgreementRejected, model.AgreementFinalized, model.AgreementCancelled,
	}
	events := []Event{EventApprove, EventReject, EventActivate, EventFinalize, EventCancel}

	for _, from := range terminals {
		require.True(t, from.Terminal())
		for _, ev := range events {
			_, err := nextStatus(from, ev)
			require.Error(t, err, "%s + %s", from, ev)
			require.Equal(t, ErrInvalidTransition, Code(err))
			// The error must name both the status and the event.
			require.Contains(t, err.Error(), string(from))
			require.Contains(t, err.Error(), string(ev))
		}
	}
}

func TestNextStatus_UnlistedEventsRejected(t *testing.T) {
	cases := []struct {
		from model.AgreementStatus
		ev   Event
	}{
		{model.AgreementPending, EventActivate},
		{model.AgreementPending, EventFinalize},
		{model.AgreementApproved, EventApprove},
		{model.AgreementApproved, EventReject},
		{model.AgreementApproved, EventFinalize},
		{model.AgreementActive, EventApprove},
		{model.AgreementActive, EventReject},
		{model.AgreementActive, EventActivate},
	}
	for _, tc := range cases {
		_, err := nextStatus(tc.from, tc.ev)
		require.Error(t, err, "%s + %s", tc.from, tc.ev)
		require.Equal(t, ErrInvalidTransition, Code(err))
	}
}

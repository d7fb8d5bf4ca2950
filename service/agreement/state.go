package agreement

import (
	"carrental/model"
)

type Event string

const (
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventActivate Event = "activate"
	EventFinalize Event = "finalize"
	EventCancel   Event = "cancel"
)

// transitions is the full lifecycle. REJECTED, FINALIZED and CANCELLED have no
// outgoing edges; anything not listed here is an invalid transition.
var transitions = map[model.AgreementStatus]map[Event]model.AgreementStatus{
	model.AgreementPending: {
		EventApprove: model.AgreementApproved,
		EventReject:  model.AgreementRejected,
		EventCancel:  model.AgreementCancelled,
	},
	model.AgreementApproved: {
		EventActivate: model.AgreementActive,
		EventCancel:   model.AgreementCancelled,
	},
	model.AgreementActive: {
		EventFinalize: model.AgreementFinalized,
		EventCancel:   model.AgreementCancelled,
	},
}

func nextStatus(from model.AgreementStatus, ev Event) (model.AgreementStatus, error) {
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	return "", invalidTransition(from, ev)
}

func invalidTransition(from model.AgreementStatus, ev Event) error {
	return makeErrf(ErrInvalidTransition, "cannot %s agreement in status %s", ev, from)
}

package engine

import (
	"shopbot-backend/internal/domains/conversation/model"
)

// Destination selects the handler for one turn, or terminates the cycle.
type Destination int

const (
	// DestTerminate ends the cycle without running a state-changing
	// handler; the response is whatever the classification step
	// already produced.
	DestTerminate Destination = iota
	DestBrowse
	DestManageCart
	DestViewCart
	DestCheckout
	DestOutOfContext
)

// Route maps an intent to its destination. Pure function over the intent
// value only; total and deterministic. Every member of the closed intent
// set is listed explicitly so adding an intent forces an update here.
func Route(intent model.UserIntent) Destination {
	switch intent {
	case model.IntentBrowse:
		return DestBrowse
	case model.IntentManageCart:
		return DestManageCart
	case model.IntentViewCart:
		return DestViewCart
	case model.IntentCheckout:
		return DestCheckout
	case model.IntentOutOfContext:
		return DestOutOfContext
	case model.IntentExit, model.IntentUnknown:
		return DestTerminate
	default:
		// Values outside the closed set never leave ParseIntent, but
		// the mapping stays total regardless.
		return DestTerminate
	}
}

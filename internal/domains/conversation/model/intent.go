package model

import "strings"

// UserIntent is the classified purpose of a user message. Closed set:
// the router must handle every value.
type UserIntent string

const (
	IntentBrowse       UserIntent = "browse"
	IntentManageCart   UserIntent = "manage_cart"
	IntentViewCart     UserIntent = "view_cart"
	IntentCheckout     UserIntent = "checkout"
	IntentOutOfContext UserIntent = "out_of_context"
	IntentUnknown      UserIntent = "unknown"
	IntentExit         UserIntent = "exit"
)

func (i UserIntent) IsValid() bool {
	switch i {
	case IntentBrowse, IntentManageCart, IntentViewCart, IntentCheckout,
		IntentOutOfContext, IntentUnknown, IntentExit:
		return true
	}
	return false
}

func (i UserIntent) String() string {
	return string(i)
}

// ParseIntent maps a classifier label to a member of the closed intent
// set. Anything unrecognized collapses to IntentUnknown; the classifier
// contract is a total function over arbitrary text.
func ParseIntent(label string) UserIntent {
	intent := UserIntent(strings.ToLower(strings.TrimSpace(label)))
	if intent.IsValid() {
		return intent
	}
	return IntentUnknown
}

// ConversationStage is the coarse phase of the conversation.
type ConversationStage string

const (
	StageWelcome   ConversationStage = "welcome"
	StageShopping  ConversationStage = "shopping"
	StageCheckout  ConversationStage = "checkout"
	StageCompleted ConversationStage = "completed"
	StageError     ConversationStage = "error"
)

func (s ConversationStage) IsValid() bool {
	switch s {
	case StageWelcome, StageShopping, StageCheckout, StageCompleted, StageError:
		return true
	}
	return false
}

func (s ConversationStage) String() string {
	return string(s)
}

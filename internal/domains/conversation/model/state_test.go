package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "shopbot-backend/internal/domains/catalog/model"
)

func TestNewConversationState(t *testing.T) {
	state := NewConversationState("")

	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, StageWelcome, state.Stage)
	assert.Equal(t, IntentUnknown, state.CurrentIntent)
	require.NotNil(t, state.Cart)
	assert.True(t, state.Cart.IsEmpty())
	assert.NoError(t, state.Validate())

	withID := NewConversationState("sess-42")
	assert.Equal(t, "sess-42", withID.SessionID)
}

func TestRecentMessages(t *testing.T) {
	state := NewConversationState("")
	state.AppendUserMessage("one")
	state.AppendAssistantMessage("two")
	state.AppendUserMessage("three")

	recent := state.RecentMessages(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)

	assert.Len(t, state.RecentMessages(10), 3)
	assert.Nil(t, state.RecentMessages(0))
}

func TestLastUserMessage(t *testing.T) {
	state := NewConversationState("")
	assert.Empty(t, state.LastUserMessage())

	state.AppendUserMessage("hi")
	state.AppendAssistantMessage("hello")
	assert.Equal(t, "hi", state.LastUserMessage())
}

func TestValidateDetectsCorruption(t *testing.T) {
	state := NewConversationState("")
	require.NoError(t, state.Validate())

	state.Cart = nil
	assert.ErrorIs(t, state.Validate(), ErrCorruptedState)

	state = NewConversationState("")
	state.Stage = ConversationStage("limbo")
	assert.ErrorIs(t, state.Validate(), ErrCorruptedState)

	state = NewConversationState("")
	state.SessionID = ""
	assert.ErrorIs(t, state.Validate(), ErrCorruptedState)
}

func TestStateSurvivesJSONRoundTrip(t *testing.T) {
	state := NewConversationState("sess-1")
	state.AppendUserMessage("add a shirt")
	require.NoError(t, state.Cart.Add(catalogModel.Product{
		ID: "prod_001", Name: "T-Shirt",
		Price: decimal.RequireFromString("29.99"), Category: "clothing", Stock: 10,
	}, 2))
	state.Stage = StageShopping
	state.LastProductID = "prod_001"

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	var restored ConversationState
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.Equal(t, "sess-1", restored.SessionID)
	assert.Equal(t, StageShopping, restored.Stage)
	assert.Equal(t, "prod_001", restored.LastProductID)
	require.NotNil(t, restored.Cart)
	assert.Equal(t, 2, restored.Cart.ItemCount())
	assert.Equal(t, "59.98", restored.Cart.Total().StringFixed(2))

	// The restored copy is independent of the original.
	restored.Cart.Clear()
	assert.Equal(t, 2, state.Cart.ItemCount())
}

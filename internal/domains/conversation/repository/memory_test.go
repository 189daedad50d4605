package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "shopbot-backend/internal/domains/catalog/model"
	"shopbot-backend/internal/domains/conversation/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := model.NewConversationState("sess-1")
	state.Stage = model.StageShopping
	require.NoError(t, state.Cart.Add(catalogModel.Product{
		ID: "prod_001", Name: "T-Shirt",
		Price: decimal.RequireFromString("29.99"), Category: "clothing", Stock: 10,
	}, 2))

	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, model.StageShopping, loaded.Stage)
	assert.Equal(t, 2, loaded.Cart.ItemCount())
}

func TestMemoryStoreLoadReturnsIndependentCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := model.NewConversationState("sess-1")
	require.NoError(t, store.Save(ctx, state))

	first, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	first.CustomerName = "Ana"

	second, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, second.CustomerName)
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := model.NewConversationState("sess-1")
	require.NoError(t, store.Save(ctx, state))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

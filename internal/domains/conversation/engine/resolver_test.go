package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "shopbot-backend/internal/domains/catalog/model"
	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/infrastructure/llm"
)

func resolverEngine() (*Engine, *model.ConversationState) {
	eng, _ := newTestEngine(&fakeLLM{})
	return eng, model.NewConversationState("")
}

func TestResolveByID(t *testing.T) {
	eng, state := resolverEngine()

	product, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByID, Value: " prod_002 "}, state)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", product.Name)

	_, err = eng.resolveProduct(llm.ProductReference{Type: llm.RefByID, Value: "prod_404"}, state)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestResolveByNameContainment(t *testing.T) {
	eng, state := resolverEngine()

	// Query contained in the catalog name.
	product, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByName, Value: "blue t-shirt"}, state)
	require.NoError(t, err)
	assert.Equal(t, "prod_001", product.ID)

	// Catalog name contained in the query.
	product, err = eng.resolveProduct(llm.ProductReference{Type: llm.RefByName, Value: "that nice desk lamp you showed me"}, state)
	require.NoError(t, err)
	assert.Equal(t, "prod_003", product.ID)
}

func TestResolveByNameShortestWins(t *testing.T) {
	catalog := &fakeCatalog{products: []catalogModel.Product{
		{ID: "a", Name: "Gaming Mouse Pad XL", Price: price("15.00"), Category: "accessories", Stock: 5},
		{ID: "b", Name: "Gaming Mouse", Price: price("59.00"), Category: "electronics", Stock: 5},
	}}
	eng := NewEngine(catalog, &fakeLLM{})

	product, err := eng.resolveByName("gaming mouse")
	require.NoError(t, err)
	assert.Equal(t, "b", product.ID)
}

func TestResolveByNameAcceptsID(t *testing.T) {
	eng, state := resolverEngine()

	// Extractors sometimes put the id in the name slot.
	product, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByName, Value: "prod_003"}, state)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", product.Name)
}

func TestResolveByNameMisses(t *testing.T) {
	eng, state := resolverEngine()

	_, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByName, Value: "submarine"}, state)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = eng.resolveProduct(llm.ProductReference{Type: llm.RefByName, Value: "   "}, state)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestResolveByIndex(t *testing.T) {
	eng, state := resolverEngine()
	state.LastSearchResults = []model.ProductSummary{
		{ID: "prod_003", Name: "Desk Lamp"},
		{ID: "prod_001", Name: "Basic Blue T-Shirt"},
	}

	product, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByIndex, Value: "2"}, state)
	require.NoError(t, err)
	assert.Equal(t, "prod_001", product.ID)

	for _, bad := range []string{"0", "3", "-1", "two"} {
		_, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByIndex, Value: bad}, state)
		assert.ErrorIs(t, err, model.ErrIndexOutOfRange, "value %q", bad)
	}
}

func TestResolveByIndexWithoutListing(t *testing.T) {
	eng, state := resolverEngine()

	_, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByIndex, Value: "1"}, state)
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)
}

func TestResolveLast(t *testing.T) {
	eng, state := resolverEngine()

	_, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByLast}, state)
	assert.ErrorIs(t, err, model.ErrNoContext)

	state.LastProductID = "prod_002"
	product, err := eng.resolveProduct(llm.ProductReference{Type: llm.RefByLast}, state)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", product.Name)
}

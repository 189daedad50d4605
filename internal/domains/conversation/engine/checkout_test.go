package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/infrastructure/llm"
)

// checkoutState returns a started session with one product in the cart,
// about to check out.
func checkoutState(t *testing.T, eng *Engine, fake *fakeLLM) *model.ConversationState {
	t.Helper()
	state := startedState(t, eng)

	fake.intent = "manage_cart"
	fake.action = addRef(llm.RefByName, "blue t-shirt", 3)
	_, err := eng.Advance(context.Background(), state, "add 3 shirts")
	require.NoError(t, err)

	fake.intent = "checkout"
	return state
}

func TestCheckoutEmptyCart(t *testing.T) {
	fake := &fakeLLM{intent: "checkout"}
	eng, _ := newTestEngine(fake)
	state := startedState(t, eng)

	reply, err := eng.Advance(context.Background(), state, "I want to buy")
	require.NoError(t, err)

	assert.Equal(t, checkoutEmptyCartMessage, reply)
	// A failed precondition leaves the stage where it was.
	assert.Equal(t, model.StageWelcome, state.Stage)
}

func TestCheckoutFullFlow(t *testing.T) {
	fake := &fakeLLM{}
	eng, _ := newTestEngine(fake)
	state := checkoutState(t, eng, fake)

	reply, err := eng.Advance(context.Background(), state, "I want to complete my purchase")
	require.NoError(t, err)
	assert.Equal(t, askNameMessage, reply)
	assert.Equal(t, model.StageCheckout, state.Stage)

	// Collecting data is sticky: the classifier must not see the name.
	before := fake.classifyCalls
	reply, err = eng.Advance(context.Background(), state, "Ana")
	require.NoError(t, err)
	assert.Equal(t, before, fake.classifyCalls)
	assert.Equal(t, "Perfect, Ana. Which city should we ship to?", reply)
	assert.Equal(t, "Ana", state.CustomerName)

	reply, err = eng.Advance(context.Background(), state, "Madrid")
	require.NoError(t, err)

	assert.Equal(t, model.StageCompleted, state.Stage)
	require.NotNil(t, state.Order)
	assert.Equal(t, "Ana", state.Order.CustomerName)
	assert.Equal(t, "Madrid", state.Order.CustomerCity)
	assert.Equal(t, "89.97", state.Order.Total.StringFixed(2))
	assert.True(t, state.Cart.IsEmpty())

	assert.Contains(t, reply, "Order confirmed!")
	assert.Contains(t, reply, state.Order.OrderNumber)
	assert.Contains(t, reply, "- 3 x Basic Blue T-Shirt - $89.97")
	assert.Contains(t, reply, "Total: $89.97")
}

func TestCheckoutStripsNamePrefix(t *testing.T) {
	fake := &fakeLLM{}
	eng, _ := newTestEngine(fake)
	state := checkoutState(t, eng, fake)

	_, err := eng.Advance(context.Background(), state, "checkout please")
	require.NoError(t, err)

	reply, err := eng.Advance(context.Background(), state, "my name is Ana")
	require.NoError(t, err)

	assert.Equal(t, "Ana", state.CustomerName)
	assert.Contains(t, reply, "Perfect, Ana")
}

func TestCheckoutKeywordNotTakenAsName(t *testing.T) {
	fake := &fakeLLM{}
	eng, _ := newTestEngine(fake)
	state := checkoutState(t, eng, fake)

	_, err := eng.Advance(context.Background(), state, "I want to buy")
	require.NoError(t, err)

	// Repeating the request re-asks without capturing a name.
	reply, err := eng.Advance(context.Background(), state, "I want to buy")
	require.NoError(t, err)

	assert.Equal(t, askNameMessage, reply)
	assert.Empty(t, state.CustomerName)
	assert.Equal(t, model.StageCheckout, state.Stage)
}

func TestCheckoutKeywordNotTakenAsCity(t *testing.T) {
	fake := &fakeLLM{}
	eng, _ := newTestEngine(fake)
	state := checkoutState(t, eng, fake)

	_, err := eng.Advance(context.Background(), state, "I want to buy")
	require.NoError(t, err)
	_, err = eng.Advance(context.Background(), state, "Ana")
	require.NoError(t, err)

	reply, err := eng.Advance(context.Background(), state, "checkout")
	require.NoError(t, err)

	assert.Equal(t, askCityMessage("Ana"), reply)
	assert.Empty(t, state.CustomerCity)
}

func TestCheckoutWithCarriedOverCustomer(t *testing.T) {
	fake := &fakeLLM{}
	eng, _ := newTestEngine(fake)
	state := checkoutState(t, eng, fake)
	state.CustomerName = "Ana"
	state.CustomerCity = "Madrid"

	reply, err := eng.Advance(context.Background(), state, "checkout")
	require.NoError(t, err)

	assert.Contains(t, reply, "Order confirmed!")
	assert.Equal(t, model.StageCompleted, state.Stage)
}

func TestSecondOrderInSameSession(t *testing.T) {
	fake := &fakeLLM{}
	eng, _ := newTestEngine(fake)
	state := checkoutState(t, eng, fake)

	_, err := eng.Advance(context.Background(), state, "I want to buy")
	require.NoError(t, err)
	_, err = eng.Advance(context.Background(), state, "Ana")
	require.NoError(t, err)
	_, err = eng.Advance(context.Background(), state, "Madrid")
	require.NoError(t, err)
	firstOrder := state.Order.OrderNumber

	// Shop again in the same session; customer data carries over.
	fake.intent = "manage_cart"
	fake.action = addRef(llm.RefByName, "desk lamp", 1)
	_, err = eng.Advance(context.Background(), state, "add a lamp")
	require.NoError(t, err)
	assert.Equal(t, model.StageShopping, state.Stage)

	fake.intent = "checkout"
	reply, err := eng.Advance(context.Background(), state, "checkout")
	require.NoError(t, err)

	assert.Contains(t, reply, "Order confirmed!")
	assert.Equal(t, "Ana", state.Order.CustomerName)
	assert.NotEqual(t, firstOrder, state.Order.OrderNumber)
}

func TestExtractNameVariants(t *testing.T) {
	cases := map[string]string{
		"Ana":               "Ana",
		"my name is Ana":    "Ana",
		"I'm Ana":           "Ana",
		"i am Ana Martinez": "Ana Martinez",
		"it's Ana":          "Ana",
		"name: Ana":         "Ana",
		"   ":               "",
	}
	for input, want := range cases {
		assert.Equal(t, want, extractName(input), "input %q", input)
	}
}

func TestIsCheckoutRequest(t *testing.T) {
	assert.True(t, isCheckoutRequest("I want to CHECK OUT now"))
	assert.True(t, isCheckoutRequest("let me pay"))
	assert.False(t, isCheckoutRequest("Ana"))
	assert.False(t, isCheckoutRequest("Madrid"))
}

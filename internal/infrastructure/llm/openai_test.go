package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCartAction(t *testing.T) {
	action, err := ParseCartAction(`{"action":"add","quantity":2,"product_reference":{"type":"name","value":"blue t-shirt"}}`)
	require.NoError(t, err)
	assert.Equal(t, ActionAdd, action.Action)
	assert.Equal(t, 2, action.Quantity)
	assert.Equal(t, RefByName, action.ProductReference.Type)
	assert.Equal(t, "blue t-shirt", action.ProductReference.Value)
}

func TestParseCartActionDefaultsQuantity(t *testing.T) {
	action, err := ParseCartAction(`{"action":"add","product_reference":{"type":"last","value":""}}`)
	require.NoError(t, err)
	assert.Equal(t, 1, action.Quantity)
}

func TestParseCartActionStripsMarkdownFence(t *testing.T) {
	raw := "Here is the action:\n```json\n{\"action\":\"remove\",\"quantity\":1,\"product_reference\":{\"type\":\"id\",\"value\":\"prod_001\"}}\n```\nLet me know if that helps."
	action, err := ParseCartAction(raw)
	require.NoError(t, err)
	assert.Equal(t, ActionRemove, action.Action)
	assert.Equal(t, "prod_001", action.ProductReference.Value)
}

func TestParseCartActionBareFence(t *testing.T) {
	raw := "```\n{\"action\":\"add\",\"quantity\":3,\"product_reference\":{\"type\":\"index\",\"value\":\"2\"}}\n```"
	action, err := ParseCartAction(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, action.Quantity)
	assert.Equal(t, RefByIndex, action.ProductReference.Type)
}

func TestParseCartActionSurroundingProse(t *testing.T) {
	raw := `Sure! {"action":"add","quantity":1,"product_reference":{"type":"name","value":"lamp"}} Anything else?`
	action, err := ParseCartAction(raw)
	require.NoError(t, err)
	assert.Equal(t, "lamp", action.ProductReference.Value)
}

func TestParseCartActionRejectsInvalid(t *testing.T) {
	cases := []string{
		"the user wants to add a shirt",
		`{"action":"update","quantity":1,"product_reference":{"type":"name","value":"shirt"}}`,
		`{"action":"add","quantity":-2,"product_reference":{"type":"name","value":"shirt"}}`,
		`{"action":"add","quantity":1,"product_reference":{"type":"color","value":"blue"}}`,
		`{"action":"add","quantity":1}`,
	}
	for _, raw := range cases {
		_, err := ParseCartAction(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse(`prefix {"a":1} suffix`))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse(`{"a":1}`))
	assert.Equal(t, "no json here", cleanJSONResponse("no json here"))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Provider: ProviderOpenAI,
		Model:    "test-model",
		BaseURL:  server.URL,
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	return client
}

func completionBody(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	raw, _ := json.Marshal(resp)
	return string(raw)
}

func TestClassifyIntentCallsChatCompletions(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("  browse\n")))
	})

	label, err := client.ClassifyIntent(context.Background(), "show me the products", Context{Stage: "welcome"})
	require.NoError(t, err)

	assert.Equal(t, "browse", label)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.NotEmpty(t, gotReq.Messages)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	})

	_, err := client.ClassifyIntent(context.Background(), "hello", Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.SmallTalk(context.Background(), "hi")
	assert.Error(t, err)
}

func TestExtractCartActionEndToEnd(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("```json\n{\"action\":\"add\",\"quantity\":2,\"product_reference\":{\"type\":\"name\",\"value\":\"mouse\"}}\n```")))
	})

	action, err := client.ExtractCartAction(context.Background(), "add two mice", Context{})
	require.NoError(t, err)
	assert.Equal(t, ActionAdd, action.Action)
	assert.Equal(t, 2, action.Quantity)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{Provider: ProviderGoogle})
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{Provider: ProviderGoogle, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", client.config.Model)
	assert.Equal(t, defaultBaseURLs[ProviderGoogle], client.config.BaseURL)
	assert.Equal(t, 1000, client.config.MaxTokens)
}

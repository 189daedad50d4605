package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/domains/conversation/repository"
	"shopbot-backend/internal/shared/middleware"
	"shopbot-backend/pkg/jwt"
)

// stubChatService answers with fixed values and records the session id
// it was called with.
type stubChatService struct {
	lastSessionID string
	sendErr       error
}

func (s *stubChatService) StartSession(context.Context) (*model.ConversationState, string, error) {
	state := model.NewConversationState("sess-1")
	return state, "Welcome!", nil
}

func (s *stubChatService) SendMessage(_ context.Context, sessionID, _ string) (*model.ChatResponse, error) {
	s.lastSessionID = sessionID
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &model.ChatResponse{SessionID: sessionID, Reply: "ok", Stage: "shopping", Intent: "browse"}, nil
}

func (s *stubChatService) CartSummary(_ context.Context, sessionID string) (*model.CartSummaryResponse, error) {
	if sessionID == "missing" {
		return nil, repository.ErrSessionNotFound
	}
	return &model.CartSummaryResponse{SessionID: sessionID, Items: []model.CartItemSummary{}, Total: "0.00"}, nil
}

func (s *stubChatService) Reset(context.Context, string) error {
	return nil
}

func newTestRouter(svc *stubChatService, tokens *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(svc, tokens)

	router := gin.New()
	router.POST("/sessions", h.CreateSession)

	authed := router.Group("")
	authed.Use(middleware.SessionAuth(tokens))
	authed.POST("/chat", h.Chat)
	authed.GET("/cart", h.Cart)
	return router
}

func TestCreateSessionReturnsToken(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	router := newTestRouter(&stubChatService{}, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool                  `json:"success"`
		Data    model.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "sess-1", body.Data.SessionID)
	assert.Equal(t, "Welcome!", body.Data.Reply)

	claims, err := tokens.ValidateToken(body.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestChatRequiresToken(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	router := newTestRouter(&stubChatService{}, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatUsesSessionFromToken(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := &stubChatService{}
	router := newTestRouter(svc, tokens)

	token, err := tokens.GenerateSessionToken("sess-9")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"show products"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-9", svc.lastSessionID)
}

func TestChatRejectsBlankMessage(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	router := newTestRouter(&stubChatService{}, tokens)

	token, err := tokens.GenerateSessionToken("sess-9")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":""}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartMissingSession(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	router := newTestRouter(&stubChatService{}, tokens)

	token, err := tokens.GenerateSessionToken("missing")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

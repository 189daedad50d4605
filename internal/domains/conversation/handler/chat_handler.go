package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/domains/conversation/repository"
	"shopbot-backend/internal/domains/conversation/service"
	"shopbot-backend/internal/shared/middleware"
	"shopbot-backend/internal/shared/response"
	"shopbot-backend/pkg/jwt"
	"shopbot-backend/pkg/logger"
)

type ChatHandler struct {
	chatService service.ServiceInterface
	tokens      *jwt.Manager
}

func NewChatHandler(chatService service.ServiceInterface, tokens *jwt.Manager) *ChatHandler {
	return &ChatHandler{chatService: chatService, tokens: tokens}
}

// CreateSession starts a new conversation and returns the session token
// the client must present on every chat call.
// POST /api/v1/sessions
func (h *ChatHandler) CreateSession(c *gin.Context) {
	state, reply, err := h.chatService.StartSession(c.Request.Context())
	if err != nil {
		logger.Error("Failed to create session", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "CHAT_001", "Failed to create session")
		return
	}

	token, err := h.tokens.GenerateSessionToken(state.SessionID)
	if err != nil {
		logger.Error("Failed to sign session token", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "CHAT_002", "Failed to create session token")
		return
	}

	response.Success(c, http.StatusCreated, model.SessionResponse{
		SessionID: state.SessionID,
		Token:     token,
		Reply:     reply,
		Stage:     state.Stage.String(),
	})
}

// Chat runs one conversation turn for the authenticated session.
// POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "CHAT_003", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "CHAT_004", "Invalid message", err.Error())
		return
	}

	sessionID := c.GetString(middleware.SessionIDKey)
	result, err := h.chatService.SendMessage(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		logger.Error("Chat turn failed", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "CHAT_005", "Failed to process message")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Cart returns the authenticated session's current cart.
// GET /api/v1/cart
func (h *ChatHandler) Cart(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	summary, err := h.chatService.CartSummary(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, "CHAT_006", "Session not found")
			return
		}
		logger.Error("Failed to read cart", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "CHAT_007", "Failed to read cart")
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Reset discards the authenticated session's state.
// DELETE /api/v1/sessions
func (h *ChatHandler) Reset(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	if err := h.chatService.Reset(c.Request.Context(), sessionID); err != nil {
		logger.Error("Failed to reset session", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "CHAT_008", "Failed to reset session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session_id": sessionID, "reset": true})
}

package engine

import (
	"context"

	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/pkg/logger"
)

// handleOutOfContext deflects an off-topic message. The model phrases
// the deflection when reachable; otherwise a canned one is used. No
// state changes beyond the history append, and the stage is untouched.
func (e *Engine) handleOutOfContext(ctx context.Context, userMessage string) (string, *model.ConversationError) {
	reply, err := e.llm.SmallTalk(ctx, userMessage)
	if err != nil || reply == "" {
		if err != nil {
			logger.Error("Small talk generation failed, using fallback", err)
		}
		return outOfContextFallback, nil
	}
	return reply, nil
}

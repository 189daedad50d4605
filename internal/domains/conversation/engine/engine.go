package engine

import (
	"context"
	"time"

	catalogService "shopbot-backend/internal/domains/catalog/service"
	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/infrastructure/llm"
	"shopbot-backend/pkg/logger"
)

// historyWindow is how many trailing messages the classifier sees.
const historyWindow = 4

// Engine drives one conversation turn at a time: classify the message,
// route by intent, run exactly one handler, return the response. It
// holds no per-session state; everything lives in the ConversationState
// threaded through Advance. Callers must not run two turns concurrently
// against the same session.
type Engine struct {
	catalog catalogService.ServiceInterface
	llm     llm.Service
}

func NewEngine(catalog catalogService.ServiceInterface, llmService llm.Service) *Engine {
	return &Engine{catalog: catalog, llm: llmService}
}

// Advance processes exactly one inbound user message and returns the
// response text. The returned error is non-nil only for states no
// handler can characterize; every domain condition is reported inside
// the response instead.
func (e *Engine) Advance(ctx context.Context, state *model.ConversationState, userMessage string) (string, error) {
	if err := state.Validate(); err != nil {
		state.Stage = model.StageError
		return "", err
	}

	// First turn of the session: greet before any intent is processed.
	if len(state.Messages) == 0 {
		state.AppendUserMessage(userMessage)
		state.AppendAssistantMessage(welcomeMessage)
		state.Stage = model.StageWelcome
		state.CurrentIntent = model.IntentUnknown
		return welcomeMessage, nil
	}

	state.AppendUserMessage(userMessage)

	intent, classifyReply := e.detectIntent(ctx, state, userMessage)
	state.CurrentIntent = intent

	start := time.Now()
	reply, cerr := e.dispatch(ctx, state, intent, userMessage, classifyReply)
	if cerr != nil {
		logger.Info("Turn ended with recoverable condition", map[string]interface{}{
			"session_id": state.SessionID,
			"intent":     intent.String(),
			"code":       cerr.Code,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	} else {
		logger.Debug("Turn completed: intent=" + intent.String())
	}

	state.AppendAssistantMessage(reply)
	return reply, nil
}

// dispatch runs the handler selected by the router and gives back the
// response plus the recoverable condition, if any.
func (e *Engine) dispatch(
	ctx context.Context,
	state *model.ConversationState,
	intent model.UserIntent,
	userMessage, classifyReply string,
) (string, *model.ConversationError) {
	switch Route(intent) {
	case DestBrowse:
		return e.handleBrowse(state)
	case DestManageCart:
		return e.handleManageCart(ctx, state, userMessage)
	case DestViewCart:
		return e.handleViewCart(state)
	case DestCheckout:
		return e.handleCheckout(state, userMessage)
	case DestOutOfContext:
		return e.handleOutOfContext(ctx, userMessage)
	case DestTerminate:
		if intent == model.IntentExit {
			return farewellMessage, nil
		}
		return classifyReply, nil
	default:
		return classifyReply, nil
	}
}

// detectIntent classifies the user message. While checkout is still
// collecting customer data the intent stays CHECKOUT without asking the
// classifier, so a bare name or city is not misread. A classifier
// failure is reported as UNKNOWN with a canned clarification; nothing
// is mutated.
func (e *Engine) detectIntent(ctx context.Context, state *model.ConversationState, userMessage string) (model.UserIntent, string) {
	if state.Stage == model.StageCheckout && !state.CustomerInfoComplete() {
		return model.IntentCheckout, ""
	}

	label, err := e.llm.ClassifyIntent(ctx, userMessage, e.buildContext(state, nil))
	if err != nil {
		logger.Error("Intent classification unavailable", err)
		return model.IntentUnknown, classifierDownMessage
	}

	intent := model.ParseIntent(label)
	logger.Debug("Classified intent: " + intent.String())
	if intent == model.IntentUnknown {
		return model.IntentUnknown, unknownIntentMessage
	}
	return intent, ""
}

// buildContext assembles the minimal context the model needs: stage,
// cart summary, short history, last product and optional candidates.
func (e *Engine) buildContext(state *model.ConversationState, candidates []llm.Candidate) llm.Context {
	convCtx := llm.Context{
		Stage:         state.Stage.String(),
		CartItemCount: state.Cart.ItemCount(),
		CustomerName:  state.CustomerName,
		CustomerCity:  state.CustomerCity,
		Candidates:    candidates,
	}

	if state.LastProductID != "" {
		if product, err := e.catalog.FindByID(state.LastProductID); err == nil {
			convCtx.LastProductName = product.Name
		}
	}

	for _, msg := range state.RecentMessages(historyWindow) {
		convCtx.History = append(convCtx.History, llm.Turn{Role: msg.Role, Content: msg.Content})
	}

	return convCtx
}

package engine

import (
	"context"
	"errors"
	"fmt"

	cartModel "shopbot-backend/internal/domains/cart/model"
	catalogModel "shopbot-backend/internal/domains/catalog/model"
	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/infrastructure/llm"
	"shopbot-backend/pkg/logger"
)

// handleManageCart extracts a structured add/remove action from the
// message, resolves the product reference and applies the mutation. The
// cart update and last_product_id move together: on any failure neither
// is touched.
func (e *Engine) handleManageCart(ctx context.Context, state *model.ConversationState, userMessage string) (string, *model.ConversationError) {
	candidates, err := e.searchCandidates(userMessage)
	if err != nil {
		return catalogDownMessage, model.NewConversationError(
			model.ErrCodeCatalogUnavailable, catalogDownMessage, err)
	}

	action, err := e.llm.ExtractCartAction(ctx, userMessage, e.buildContext(state, candidates))
	if err != nil {
		logger.Error("Cart action extraction failed", err)
		return extractionFailedMessage, model.NewConversationError(
			model.ErrCodeExtractionFailed, extractionFailedMessage, model.ErrExtractionFailed)
	}

	product, err := e.resolveProduct(action.ProductReference, state)
	if err != nil {
		return resolutionFailure(err)
	}

	var reply string
	switch action.Action {
	case llm.ActionRemove:
		reply, err = removeFromCart(state.Cart, product, action.Quantity)
	default:
		reply, err = addToCart(state.Cart, product, action.Quantity)
	}
	if err != nil {
		return reply, cartFailure(err, reply)
	}

	state.LastProductID = product.ID
	state.Stage = model.StageShopping
	return reply, nil
}

// searchCandidates finds catalog products that look related to the
// message, to ground the extractor's product reference.
func (e *Engine) searchCandidates(userMessage string) ([]llm.Candidate, error) {
	products, err := e.catalog.Search(userMessage)
	if err != nil {
		return nil, err
	}

	candidates := make([]llm.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, llm.Candidate{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.StringFixed(2),
			Category: p.Category,
			Stock:    p.Stock,
		})
	}
	return candidates, nil
}

// addToCart validates stock against the merged quantity and applies the
// add. ShoppingCart.Add checks before mutating, so a stock failure
// leaves the cart untouched.
func addToCart(cart *cartModel.ShoppingCart, product *catalogModel.Product, quantity int) (string, error) {
	if err := cart.Add(*product, quantity); err != nil {
		if errors.Is(err, cartModel.ErrInsufficientStock) {
			return fmt.Sprintf("Only %d units of %s are available.", product.Stock, product.Name), err
		}
		return extractionFailedMessage, err
	}
	return fmt.Sprintf("Added %d x %s to your cart.", quantity, product.Name), nil
}

func removeFromCart(cart *cartModel.ShoppingCart, product *catalogModel.Product, quantity int) (string, error) {
	item := cart.Item(product.ID)
	if item == nil {
		return fmt.Sprintf("%s is not in your cart.", product.Name), cartModel.ErrItemNotInCart
	}

	remaining := item.Quantity - quantity
	if err := cart.Remove(product.ID, quantity); err != nil {
		return fmt.Sprintf("%s is not in your cart.", product.Name), err
	}

	if remaining <= 0 {
		return fmt.Sprintf("Removed %s from your cart.", product.Name), nil
	}
	return fmt.Sprintf("Removed %d x %s; %d left in your cart.", quantity, product.Name, remaining), nil
}

// resolutionFailure maps a resolver error onto its user-facing message.
func resolutionFailure(err error) (string, *model.ConversationError) {
	switch {
	case errors.Is(err, model.ErrIndexOutOfRange):
		return indexOutOfRangeMessage, model.NewConversationError(
			model.ErrCodeIndexOutOfRange, indexOutOfRangeMessage, err)
	case errors.Is(err, model.ErrNoContext):
		return noContextMessage, model.NewConversationError(
			model.ErrCodeNoContext, noContextMessage, err)
	case errors.Is(err, model.ErrNotFound):
		return productNotFoundMessage, model.NewConversationError(
			model.ErrCodeNotFound, productNotFoundMessage, err)
	default:
		return catalogDownMessage, model.NewConversationError(
			model.ErrCodeCatalogUnavailable, catalogDownMessage, err)
	}
}

func cartFailure(err error, reply string) *model.ConversationError {
	switch {
	case errors.Is(err, cartModel.ErrInsufficientStock):
		return model.NewConversationError(model.ErrCodeInsufficientStock, reply, err)
	case errors.Is(err, cartModel.ErrItemNotInCart):
		return model.NewConversationError(model.ErrCodeItemNotInCart, reply, err)
	default:
		return model.NewConversationError(model.ErrCodeExtractionFailed, reply, err)
	}
}

package engine

import (
	"fmt"
	"strings"

	"shopbot-backend/internal/domains/conversation/model"
)

// handleViewCart is a pure read: the listing and total are computed
// fresh from the current items, never cached.
func (e *Engine) handleViewCart(state *model.ConversationState) (string, *model.ConversationError) {
	if state.Cart.IsEmpty() {
		return emptyCartMessage, nil
	}

	var b strings.Builder
	b.WriteString("Your cart:\n\n")
	for _, item := range state.Cart.Items() {
		fmt.Fprintf(&b, "- %d x %s ($%s each) - $%s\n",
			item.Quantity, item.Product.Name,
			item.Product.Price.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n\nWould you like to check out?", state.Cart.Total().StringFixed(2))

	return b.String(), nil
}

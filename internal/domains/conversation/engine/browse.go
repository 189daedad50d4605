package engine

import (
	"fmt"
	"strings"

	"shopbot-backend/internal/domains/conversation/model"
)

// handleBrowse enumerates the catalog and records the listing so later
// references by index resolve against what the user saw.
func (e *Engine) handleBrowse(state *model.ConversationState) (string, *model.ConversationError) {
	products, err := e.catalog.ListAll()
	if err != nil {
		// Transient collaborator failure; the stage is left untouched.
		return catalogDownMessage, model.NewConversationError(
			model.ErrCodeCatalogUnavailable, catalogDownMessage, err)
	}

	results := make([]model.ProductSummary, 0, len(products))
	var b strings.Builder
	b.WriteString("Available products:\n\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s - $%s (%s) - Stock: %d\n",
			i+1, p.Name, p.Price.StringFixed(2), p.Category, p.Stock)
		results = append(results, model.ProductSummary{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Stock:    p.Stock,
		})
	}
	b.WriteString("\nYou can say \"add 2 Basic Blue T-Shirt\" or \"I want item 1\".")

	state.LastSearchResults = results
	state.Stage = model.StageShopping

	return b.String(), nil
}

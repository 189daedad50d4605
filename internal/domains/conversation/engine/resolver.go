package engine

import (
	"errors"
	"strconv"
	"strings"

	catalogModel "shopbot-backend/internal/domains/catalog/model"
	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/infrastructure/llm"
)

// resolveProduct turns a loosely-typed product reference into a concrete
// catalog product using the conversation context. It never mutates state.
func (e *Engine) resolveProduct(ref llm.ProductReference, state *model.ConversationState) (*catalogModel.Product, error) {
	switch ref.Type {
	case llm.RefByID:
		return e.resolveByID(ref.Value)
	case llm.RefByIndex:
		return e.resolveByIndex(ref.Value, state)
	case llm.RefByName:
		return e.resolveByName(ref.Value)
	case llm.RefByLast:
		return e.resolveLast(state)
	default:
		return nil, model.ErrNotFound
	}
}

func (e *Engine) resolveByID(id string) (*catalogModel.Product, error) {
	product, err := e.catalog.FindByID(strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, catalogModel.ErrProductNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// resolveByIndex resolves a 1-based position in the most recent listing.
func (e *Engine) resolveByIndex(value string, state *model.ConversationState) (*catalogModel.Product, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, model.ErrIndexOutOfRange
	}
	if idx < 1 || idx > len(state.LastSearchResults) {
		return nil, model.ErrIndexOutOfRange
	}
	return e.resolveByID(state.LastSearchResults[idx-1].ID)
}

// resolveByName finds the best case-insensitive containment match over
// catalog names. Ties break by shortest name, then catalog order. The
// resolver always answers with a single best match or a miss; ambiguity
// is never surfaced as its own error.
func (e *Engine) resolveByName(value string) (*catalogModel.Product, error) {
	query := strings.ToLower(strings.TrimSpace(value))
	if query == "" {
		return nil, model.ErrNotFound
	}

	// The extractor sometimes hands back a product id in the name slot;
	// honor it before scanning names.
	if product, err := e.catalog.FindByID(strings.TrimSpace(value)); err == nil {
		return product, nil
	}

	products, err := e.catalog.ListAll()
	if err != nil {
		return nil, err
	}

	var best *catalogModel.Product
	for i := range products {
		name := strings.ToLower(products[i].Name)
		if !strings.Contains(name, query) && !strings.Contains(query, name) {
			continue
		}
		if best == nil || len(products[i].Name) < len(best.Name) {
			candidate := products[i]
			best = &candidate
		}
	}

	if best == nil {
		return nil, model.ErrNotFound
	}
	return best, nil
}

func (e *Engine) resolveLast(state *model.ConversationState) (*catalogModel.Product, error) {
	if state.LastProductID == "" {
		return nil, model.ErrNoContext
	}
	return e.resolveByID(state.LastProductID)
}

package repository

import (
	"shopbot-backend/internal/domains/catalog/model"
)

// Store is the read-only contract the conversation engine consumes.
// Implementations must preserve catalog order in ListAll. Lookup misses
// are model.ErrProductNotFound; anything else means the catalog itself
// is unavailable.
type Store interface {
	ListAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
}

package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"shopbot-backend/internal/domains/catalog/model"
	"shopbot-backend/pkg/logger"
)

type catalogFile struct {
	Products []model.Product `json:"products"`
}

// JSONStore keeps the catalog in memory, loaded once from a JSON file.
// Lookup by id is O(1); ListAll preserves file order.
type JSONStore struct {
	products []model.Product
	byID     map[string]int
}

// NewJSONStore loads the catalog from path. Invalid entries are skipped
// with a warning so one bad product does not take the whole catalog down.
func NewJSONStore(path string) (*JSONStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	store := &JSONStore{
		byID: make(map[string]int, len(file.Products)),
	}

	for _, product := range file.Products {
		if err := product.Validate(); err != nil {
			logger.Warn("Skipping invalid catalog product", map[string]interface{}{
				"product_id": product.ID,
				"error":      err.Error(),
			})
			continue
		}
		if _, exists := store.byID[product.ID]; exists {
			logger.Warn("Skipping duplicate catalog product", map[string]interface{}{
				"product_id": product.ID,
			})
			continue
		}
		store.byID[product.ID] = len(store.products)
		store.products = append(store.products, product)
	}

	logger.Info("Catalog loaded", map[string]interface{}{
		"path":     path,
		"products": len(store.products),
	})

	return store, nil
}

// ListAll returns every product in catalog order
func (s *JSONStore) ListAll() ([]model.Product, error) {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// FindByID looks a product up by its exact id
func (s *JSONStore) FindByID(id string) (*model.Product, error) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	product := s.products[idx]
	return &product, nil
}

// FindByName looks a product up by exact name, case-insensitive
func (s *JSONStore) FindByName(name string) (*model.Product, error) {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, product := range s.products {
		if strings.ToLower(product.Name) == target {
			p := product
			return &p, nil
		}
	}
	return nil, model.ErrProductNotFound
}

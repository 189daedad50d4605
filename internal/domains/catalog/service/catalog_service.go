package service

import (
	"sort"
	"strings"

	"shopbot-backend/internal/domains/catalog/model"
	"shopbot-backend/internal/domains/catalog/repository"
)

// maxSearchResults caps the candidate list handed to the entity extractor
// so the prompt stays small.
const maxSearchResults = 10

type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) ServiceInterface {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListAll() ([]model.Product, error) {
	return s.store.ListAll()
}

func (s *CatalogService) FindByID(id string) (*model.Product, error) {
	return s.store.FindByID(id)
}

func (s *CatalogService) FindByName(name string) (*model.Product, error) {
	return s.store.FindByName(name)
}

// Search scores every product against the query and returns the best
// matches, most relevant first. Name matches outrank category matches,
// which outrank description matches. Used to build the candidate list
// for cart-action extraction; not a user-facing search.
func (s *CatalogService) Search(query string) ([]model.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	products, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}

	type scored struct {
		product model.Product
		score   float64
		pos     int
	}

	var matches []scored
	for pos, product := range products {
		score := matchScore(query, product)
		if score > 0 {
			matches = append(matches, scored{product: product, score: score, pos: pos})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].pos < matches[j].pos
	})

	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}

	out := make([]model.Product, len(matches))
	for i, m := range matches {
		out[i] = m.product
	}
	return out, nil
}

// matchScore combines whole-phrase containment with per-word overlap.
// Field weights: name 1.0, category 0.9, description 0.8.
func matchScore(query string, product model.Product) float64 {
	name := strings.ToLower(product.Name)
	category := strings.ToLower(product.Category)
	description := strings.ToLower(product.Description)

	score := 0.0
	if strings.Contains(name, query) || strings.Contains(query, name) {
		score = 1.0
	} else if strings.Contains(category, query) || strings.Contains(query, category) {
		score = 0.9
	} else if description != "" && strings.Contains(description, query) {
		score = 0.8
	}

	// Word-level overlap catches partial mentions like "blue shirt"
	// against "Basic Blue T-Shirt".
	words := strings.Fields(query)
	if len(words) > 0 {
		hits := 0
		for _, word := range words {
			if len(word) >= 3 && strings.Contains(name, word) {
				hits++
			}
		}
		overlap := 0.7 * float64(hits) / float64(len(words))
		if overlap > score {
			score = overlap
		}
	}

	return score
}

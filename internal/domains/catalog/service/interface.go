package service

import (
	"shopbot-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	ListAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	Search(query string) ([]model.Product, error)
}

package wishlist

import (
	"time"

	"github.com/sirawit-dev/storefront-backend/internal/product"
)

type Service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Add(userID int, productID int) ([]int, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.Add(userID, productID, time.Now().Format(time.RFC3339))
}

func (s *Service) Remove(userID int, productID int) ([]int, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Remove(userID, productID, time.Now().Format(time.RFC3339))
}

// List resolves the stored ids to products, preserving insertion order.
// Products that no longer exist are skipped.
func (s *Service) List(userID int) ([]product.Product, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []product.Product{}, nil
	}
	return s.products.ListByIDs(ids)
}

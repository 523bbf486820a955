package favorite

import (
	"time"

	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/user"
)

type Service struct {
	repo     Repository
	users    user.ServiceInterface
	products product.ServiceInterface
}

func NewService(repo Repository, users user.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, users: users, products: products}
}

// Add marks the product as a favorite. Adding a product that is already a
// favorite succeeds without changing its added date.
func (s *Service) Add(userID, productID int) error {
	if err := s.checkUserAndProduct(userID, productID); err != nil {
		return err
	}
	_, err := s.repo.Add(userID, productID, time.Now())
	return err
}

func (s *Service) Remove(userID, productID int) error {
	if !s.users.Exists(userID) {
		return user.ErrNotFound
	}
	return s.repo.Remove(userID, productID)
}

func (s *Service) Contains(userID, productID int) (bool, error) {
	if err := s.checkUserAndProduct(userID, productID); err != nil {
		return false, err
	}
	return s.repo.Contains(userID, productID)
}

func (s *Service) ListProductIDs(userID int) ([]int, error) {
	if !s.users.Exists(userID) {
		return nil, user.ErrNotFound
	}
	return s.repo.ListProductIDs(userID)
}

// List returns the favorite entries sorted by one of the allow-listed
// fields: addedDate, price, or stock. Order must be "asc" or "desc"; an
// empty sort defaults to addedDate ascending.
func (s *Service) List(userID int, sortBy, order string) ([]Entry, error) {
	if !s.users.Exists(userID) {
		return nil, user.ErrNotFound
	}

	if sortBy == "" {
		sortBy = SortByAddedDate
	}
	switch sortBy {
	case SortByAddedDate, SortByPrice, SortByStock:
	default:
		return nil, ErrInvalidSort
	}

	desc := false
	switch order {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return nil, ErrInvalidOrder
	}

	return s.repo.List(userID, sortBy, desc)
}

func (s *Service) checkUserAndProduct(userID, productID int) error {
	if !s.users.Exists(userID) {
		return user.ErrNotFound
	}
	if !s.products.Exists(productID) {
		return product.ErrNotFound
	}
	return nil
}

package cart

import (
	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/user"
)

// ServiceInterface is consumed by the order-fulfillment engine: the
// checkout snapshot comes from ListForCheckout and the post-commit
// clear goes through Clear.
type ServiceInterface interface {
	ListForCheckout(userID int) (Listing, error)
	Clear(userID int) error
}

// Service validates cart mutations against the catalog. Cart rows never
// reserve stock: availability is checked here advisorily and enforced
// authoritatively at checkout, where the single stock deduction happens.
type Service struct {
	repo     Repository
	users    user.ServiceInterface
	products product.ServiceInterface
}

func NewService(repo Repository, users user.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, users: users, products: products}
}

// AddOne adds a single unit of the product to the user's cart, creating
// the row or incrementing its quantity. Returns the cart item count.
func (s *Service) AddOne(userID, productID int) (int, error) {
	if userID <= 0 || !s.users.Exists(userID) {
		return 0, user.ErrNotFound
	}
	p, err := s.products.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if p.Stock == 0 {
		return 0, product.ErrOutOfStock
	}

	current := 0
	if qty, err := s.repo.GetQuantity(userID, productID); err == nil {
		current = qty
	}
	if current+1 > p.Stock {
		return 0, product.ErrInsufficientStock
	}

	return s.repo.AddOne(userID, productID)
}

// SetQuantity replaces the quantity of an existing cart row. The new
// quantity is validated against available stock as a whole, not as a
// delta from the previous value.
func (s *Service) SetQuantity(userID, productID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if userID <= 0 || !s.users.Exists(userID) {
		return user.ErrNotFound
	}
	p, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if p.Stock == 0 {
		return product.ErrOutOfStock
	}
	if quantity > p.Stock {
		return product.ErrInsufficientStock
	}

	return s.repo.SetQuantity(userID, productID, quantity)
}

func (s *Service) Remove(userID, productID int) error {
	if userID <= 0 || !s.users.Exists(userID) {
		return user.ErrNotFound
	}
	if !s.products.Exists(productID) {
		return product.ErrNotFound
	}
	return s.repo.Remove(userID, productID)
}

func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return user.ErrNotFound
	}
	return s.repo.Clear(userID)
}

func (s *Service) Contains(userID, productID int) (bool, error) {
	_, err := s.repo.GetQuantity(userID, productID)
	if err == ErrItemNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns the full cart projection with product details and the
// primary image reference.
func (s *Service) List(userID int) (Listing, error) {
	return s.list(userID, true)
}

// ListForCheckout returns the lighter projection used on the checkout
// screen (no image lookups).
func (s *Service) ListForCheckout(userID int) (Listing, error) {
	return s.list(userID, false)
}

func (s *Service) list(userID int, includeImage bool) (Listing, error) {
	if userID <= 0 || !s.users.Exists(userID) {
		return Listing{}, user.ErrNotFound
	}
	items, err := s.repo.List(userID, includeImage)
	if err != nil {
		return Listing{}, err
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return Listing{TotalQuantity: total, Items: items}, nil
}

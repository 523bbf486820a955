package cart

import (
	"sync"

	"github.com/productshopwm/shop-backend/internal/product"
)

type Repository interface {
	// AddOne upserts the (user, product) row, incrementing quantity by
	// one, and returns the user's cart item count.
	AddOne(userID, productID int) (int, error)
	GetQuantity(userID, productID int) (int, error)
	SetQuantity(userID, productID, quantity int) error
	Remove(userID, productID int) error
	Clear(userID int) error
	Count(userID int) (int, error)
	// List returns the cart joined with product name, price and primary
	// image; includeImage=false is the lighter checkout projection.
	List(userID int, includeImage bool) ([]Item, error)
}

type row struct {
	userID    int
	productID int
	quantity  int
}

// InMemoryRepository joins against a seeded product set, standing in for
// the SQL join in tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	rows     []row
	products map[int]product.Product
}

func NewInMemoryRepository(products []product.Product) *InMemoryRepository {
	m := make(map[int]product.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &InMemoryRepository{products: m}
}

func (r *InMemoryRepository) AddOne(userID, productID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for i := range r.rows {
		if r.rows[i].userID == userID && r.rows[i].productID == productID {
			r.rows[i].quantity++
			found = true
			break
		}
	}
	if !found {
		r.rows = append(r.rows, row{userID: userID, productID: productID, quantity: 1})
	}
	return r.countLocked(userID), nil
}

func (r *InMemoryRepository) GetQuantity(userID, productID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rw := range r.rows {
		if rw.userID == userID && rw.productID == productID {
			return rw.quantity, nil
		}
	}
	return 0, ErrItemNotFound
}

func (r *InMemoryRepository) SetQuantity(userID, productID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].userID == userID && r.rows[i].productID == productID {
			r.rows[i].quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].userID == userID && r.rows[i].productID == productID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	for _, rw := range r.rows {
		if rw.userID != userID {
			kept = append(kept, rw)
		}
	}
	r.rows = kept
	return nil
}

func (r *InMemoryRepository) Count(userID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countLocked(userID), nil
}

func (r *InMemoryRepository) countLocked(userID int) int {
	n := 0
	for _, rw := range r.rows {
		if rw.userID == userID {
			n++
		}
	}
	return n
}

func (r *InMemoryRepository) List(userID int, includeImage bool) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0)
	for _, rw := range r.rows {
		if rw.userID != userID {
			continue
		}
		p, ok := r.products[rw.productID]
		if !ok {
			continue
		}
		out = append(out, Item{
			ProductID:   rw.productID,
			ProductName: p.Name,
			Quantity:    rw.quantity,
			Price:       p.Price,
		})
	}
	return out, nil
}

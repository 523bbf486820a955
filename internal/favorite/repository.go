package favorite

import (
	"sort"
	"sync"
	"time"

	"github.com/productshopwm/shop-backend/internal/product"
)

type Repository interface {
	// Add is idempotent: adding an existing favorite is a no-op that
	// reports added=false.
	Add(userID, productID int, addedAt time.Time) (added bool, err error)
	Remove(userID, productID int) error
	Contains(userID, productID int) (bool, error)
	ListProductIDs(userID int) ([]int, error)
	// List returns entries joined with products, ordered by the given
	// allow-listed field; desc=false means ascending.
	List(userID int, sortBy string, desc bool) ([]Entry, error)
}

type favRow struct {
	userID    int
	productID int
	addedAt   time.Time
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	rows     []favRow
	products map[int]product.Product
}

func NewInMemoryRepository(products []product.Product) *InMemoryRepository {
	m := make(map[int]product.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &InMemoryRepository{products: m}
}

func (r *InMemoryRepository) Add(userID, productID int, addedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.userID == userID && row.productID == productID {
			return false, nil
		}
	}
	r.rows = append(r.rows, favRow{userID: userID, productID: productID, addedAt: addedAt})
	return true, nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.userID == userID && row.productID == productID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}

func (r *InMemoryRepository) Contains(userID, productID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.userID == userID && row.productID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) ListProductIDs(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0)
	for _, row := range r.rows {
		if row.userID == userID {
			out = append(out, row.productID)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) List(userID int, sortBy string, desc bool) ([]Entry, error) {
	r.mu.RLock()
	entries := make([]Entry, 0)
	for _, row := range r.rows {
		if row.userID != userID {
			continue
		}
		p, ok := r.products[row.productID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ProductID:   row.productID,
			ProductName: p.Name,
			Price:       p.Price,
			Stock:       p.Stock,
			AddedDate:   row.addedAt,
		})
	}
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		var less bool
		switch sortBy {
		case SortByPrice:
			less = entries[i].Price.LessThan(entries[j].Price)
		case SortByStock:
			less = entries[i].Stock < entries[j].Stock
		default:
			less = entries[i].AddedDate.Before(entries[j].AddedDate)
		}
		if desc {
			return !less
		}
		return less
	})
	return entries, nil
}

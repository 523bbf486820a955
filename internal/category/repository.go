package category

import (
	"strings"
	"sync"
)

type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	// ExistsByName performs a case-insensitive name check, optionally
	// excluding one category id (for renames).
	ExistsByName(name string, excludeID int) (bool, error)
	Create(name string) (Category, error)
	Rename(id int, name string) error
	Delete(id int) error
	HasProducts(id int) (bool, error)
}

// InMemoryRepository backs handler tests. Product membership is seeded
// as a plain categoryID -> count map.
type InMemoryRepository struct {
	mu            sync.RWMutex
	categories    []Category
	productCounts map[int]int
	nextID        int
}

func NewInMemoryRepository(seed []Category, productCounts map[int]int) *InMemoryRepository {
	r := &InMemoryRepository{productCounts: productCounts, nextID: 1}
	if r.productCounts == nil {
		r.productCounts = map[int]int{}
	}
	maxID := 0
	for _, cat := range seed {
		r.categories = append(r.categories, cat)
		if cat.ID > maxID {
			maxID = cat.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cat := range r.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) ExistsByName(name string, excludeID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cat := range r.categories {
		if cat.ID != excludeID && strings.EqualFold(cat.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) Create(name string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cat := Category{ID: r.nextID, Name: name}
	r.nextID++
	r.categories = append(r.categories, cat)
	return cat, nil
}

func (r *InMemoryRepository) Rename(id int, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cat := range r.categories {
		if cat.ID == id {
			r.categories[i].Name = name
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cat := range r.categories {
		if cat.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) HasProducts(id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.productCounts[id] > 0, nil
}

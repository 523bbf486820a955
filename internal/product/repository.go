package product

import (
	"strconv"
	"strings"
	"sync"
)

type Repository interface {
	List() []Product
	ListByCategoryID(categoryID int) []Product
	ListByIDs(ids []int) ([]Product, error)
	GetByID(id int) (Product, error)
	Exists(id int) bool
	Search(query string) ([]Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	SetDeleted(id int, deleted bool) error
	SetStock(id int, stock int) error

	AddImage(productID int, name string, data []byte) (Image, error)
	ListImages(productID int) ([]Image, error)
	GetImage(imageID int) (Image, error)
	DeleteImage(imageID int) error
}

// InMemoryRepository backs handler and service tests.
type InMemoryRepository struct {
	mu          sync.RWMutex
	products    []Product
	images      []Image
	nextID      int
	nextImageID int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1, nextImageID: 1}
	maxID := 0
	for _, p := range seed {
		r.products = append(r.products, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *InMemoryRepository) ListByCategoryID(categoryID int) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Exists(id int) bool {
	_, err := r.GetByID(id)
	return err == nil
}

func (r *InMemoryRepository) Search(query string) ([]Product, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range r.products {
		if strings.HasPrefix(strings.ToLower(p.Name), normalized) || strconv.Itoa(p.ID) == normalized {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, update Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			update.ID = id
			update.IsDeleted = p.IsDeleted
			r.products[i] = update
			return update, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) SetDeleted(id int, deleted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products[i].IsDeleted = deleted
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) SetStock(id int, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products[i].Stock = stock
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) AddImage(productID int, name string, data []byte) (Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for _, p := range r.products {
		if p.ID == productID {
			found = true
			break
		}
	}
	if !found {
		return Image{}, ErrNotFound
	}
	img := Image{ID: r.nextImageID, ProductID: productID, Name: name, Data: data}
	r.nextImageID++
	r.images = append(r.images, img)
	return img, nil
}

func (r *InMemoryRepository) ListImages(productID int) ([]Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Image, 0)
	for _, img := range r.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetImage(imageID int) (Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, img := range r.images {
		if img.ID == imageID {
			return img, nil
		}
	}
	return Image{}, ErrImageNotFound
}

func (r *InMemoryRepository) DeleteImage(imageID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, img := range r.images {
		if img.ID == imageID {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return nil
		}
	}
	return ErrImageNotFound
}

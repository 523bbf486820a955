package product

import (
	"errors"
	"strings"
)

var ErrEmptyQuery = errors.New("search query cannot be empty")

// ServiceInterface is consumed by the cart and order packages for
// product lookups during validation and projection building.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	Exists(id int) bool
	ListByIDs(ids []int) ([]Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) ListByCategoryID(categoryID int) []Product {
	if categoryID <= 0 {
		return []Product{}
	}
	return s.repo.ListByCategoryID(categoryID)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Exists(id int) bool {
	if id <= 0 {
		return false
	}
	return s.repo.Exists(id)
}

func (s *Service) Search(query string) ([]Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return s.repo.Search(query)
}

func (s *Service) Create(p Product) (Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Product{}, errors.New("product name cannot be empty")
	}
	if p.Price.IsNegative() || p.Stock < 0 {
		return Product{}, errors.New("price and stock must be non-negative")
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	if strings.TrimSpace(p.Name) == "" {
		return Product{}, errors.New("product name cannot be empty")
	}
	if p.Price.IsNegative() || p.Stock < 0 {
		return Product{}, errors.New("price and stock must be non-negative")
	}
	return s.repo.Update(id, p)
}

// SoftDelete hides a product from the storefront without breaking the
// order history that references it.
func (s *Service) SoftDelete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.SetDeleted(id, true)
}

func (s *Service) Restore(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.SetDeleted(id, false)
}

// SetStock overwrites the absolute stock count.
func (s *Service) SetStock(id int, stock int) error {
	if id <= 0 {
		return ErrNotFound
	}
	if stock < 0 {
		return errors.New("stock must be non-negative")
	}
	return s.repo.SetStock(id, stock)
}

func (s *Service) AddImage(productID int, name string, data []byte) (Image, error) {
	if productID <= 0 {
		return Image{}, ErrNotFound
	}
	if len(data) == 0 {
		return Image{}, errors.New("image data cannot be empty")
	}
	return s.repo.AddImage(productID, name, data)
}

func (s *Service) ListImages(productID int) ([]Image, error) {
	if productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListImages(productID)
}

func (s *Service) GetImage(imageID int) (Image, error) {
	if imageID <= 0 {
		return Image{}, ErrImageNotFound
	}
	return s.repo.GetImage(imageID)
}

func (s *Service) DeleteImage(imageID int) error {
	if imageID <= 0 {
		return ErrImageNotFound
	}
	return s.repo.DeleteImage(imageID)
}

package category

import (
	"errors"
	"strings"
)

var ErrEmptyName = errors.New("category name cannot be empty")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Category, error) {
	if id <= 0 {
		return Category{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

// Create enforces case-insensitive uniqueness of category names.
func (s *Service) Create(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}
	exists, err := s.repo.ExistsByName(name, 0)
	if err != nil {
		return Category{}, err
	}
	if exists {
		return Category{}, ErrDuplicate
	}
	return s.repo.Create(name)
}

func (s *Service) Rename(id int, name string) error {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" {
		return ErrEmptyName
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(name, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}
	return s.repo.Rename(id, name)
}

// Delete refuses to remove a category that still has products.
func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	hasProducts, err := s.repo.HasProducts(id)
	if err != nil {
		return err
	}
	if hasProducts {
		return ErrHasProducts
	}
	return s.repo.Delete(id)
}

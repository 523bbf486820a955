package pickup

import (
	"errors"
	"strings"
)

// ServiceInterface is what the order-fulfillment engine depends on when
// resolving a pickup point during checkout.
type ServiceInterface interface {
	GetByID(id int) (Point, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Point, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Point, error) {
	if id <= 0 {
		return Point{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Point) (Point, error) {
	if strings.TrimSpace(p.Address) == "" {
		return Point{}, errors.New("address cannot be empty")
	}
	return s.repo.Create(p)
}

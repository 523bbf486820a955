package pickup

import "sync"

type Repository interface {
	List() ([]Point, error)
	GetByID(id int) (Point, error)
	Create(p Point) (Point, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	points []Point
	nextID int
}

func NewInMemoryRepository(seed []Point) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, p := range seed {
		r.points = append(r.points, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Point, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Point, len(r.points))
	copy(out, r.points)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Point, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.points {
		if p.ID == id {
			return p, nil
		}
	}
	return Point{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Point) (Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.points = append(r.points, p)
	return p, nil
}

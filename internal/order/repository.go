package order

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/productshopwm/shop-backend/internal/product"
)

// Repository owns order and order-item persistence. Every mutating
// method is atomic: the stock adjustment, the row writes, and the total
// recomputation either all commit or none do.
type Repository interface {
	// CreateFromCart writes the order, its items with frozen unit
	// prices, and the stock decrements in one transaction. Any product
	// with insufficient stock fails the whole checkout.
	CreateFromCart(ctx context.Context, userID int, pickupPointID *int, lines []CheckoutLine) (Order, error)

	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAll() ([]Order, error)
	ListByStatus(status string) ([]Order, error)
	ListItems(orderID int) ([]Item, error)

	// ConfirmPickup transitions a pending order to issued, stamping at
	// as the pickup date. Confirming an already-issued order returns
	// the original timestamp without changing anything.
	ConfirmPickup(ctx context.Context, id int, at time.Time) (Confirmation, error)

	// Cancel transitions a pending order to cancelled. restock returns
	// the order's quantities to product stock; a repeated cancel is a
	// no-op and never restocks twice.
	Cancel(ctx context.Context, id int, restock bool) error

	AddItem(ctx context.Context, orderID, productID, quantity int) (Item, error)
	SetItemQuantity(ctx context.Context, itemID, quantity int) error
	RemoveItem(ctx context.Context, itemID int) error
}

// InMemoryRepository mirrors the transactional semantics of the
// Postgres implementation over a seeded product repository, for tests.
type InMemoryRepository struct {
	mu         sync.Mutex
	orders     []Order
	items      []Item
	nextID     int
	nextItemID int
	products   product.Repository
}

func NewInMemoryRepository(products product.Repository) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, nextItemID: 1, products: products}
}

func (r *InMemoryRepository) CreateFromCart(_ context.Context, userID int, pickupPointID *int, lines []CheckoutLine) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Snapshot prices and validate stock up front so a mid-sequence
	// failure leaves nothing behind.
	type staged struct {
		p   product.Product
		qty int
	}
	stagedLines := make([]staged, 0, len(lines))
	for _, line := range lines {
		p, err := r.products.GetByID(line.ProductID)
		if err != nil {
			return Order{}, err
		}
		if p.Stock < line.Quantity {
			return Order{}, product.ErrInsufficientStock
		}
		stagedLines = append(stagedLines, staged{p: p, qty: line.Quantity})
	}

	ord := Order{
		ID:            r.nextID,
		UserID:        userID,
		OrderDate:     time.Now(),
		Status:        StatusPending,
		Total:         decimal.Zero,
		IsPickup:      true,
		PickupPointID: pickupPointID,
	}
	r.nextID++

	for _, sl := range stagedLines {
		if err := r.products.SetStock(sl.p.ID, sl.p.Stock-sl.qty); err != nil {
			return Order{}, err
		}
		item := Item{
			ID:        r.nextItemID,
			OrderID:   ord.ID,
			ProductID: sl.p.ID,
			Quantity:  sl.qty,
			Price:     sl.p.Price,
		}
		r.nextItemID++
		r.items = append(r.items, item)
		ord.Total = ord.Total.Add(sl.p.Price.Mul(decimal.NewFromInt(int64(sl.qty))))
	}

	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, _, err := r.findLocked(id)
	return ord, err
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) ListByStatus(status string) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.Status == status {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListItems(orderID int) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listItemsLocked(orderID), nil
}

func (r *InMemoryRepository) ConfirmPickup(_ context.Context, id int, at time.Time) (Confirmation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, i, err := r.findLocked(id)
	if err != nil {
		return Confirmation{}, err
	}
	switch r.orders[i].Status {
	case StatusIssued:
		return Confirmation{AlreadyIssued: true, PickupDate: *r.orders[i].PickupDate}, nil
	case StatusCancelled:
		return Confirmation{}, ErrInvalidState
	}
	r.orders[i].Status = StatusIssued
	r.orders[i].PickupDate = &at
	return Confirmation{PickupDate: at}, nil
}

func (r *InMemoryRepository) Cancel(_ context.Context, id int, restock bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, i, err := r.findLocked(id)
	if err != nil {
		return err
	}
	switch r.orders[i].Status {
	case StatusIssued:
		return ErrInvalidState
	case StatusCancelled:
		return nil
	}
	if restock {
		for _, item := range r.listItemsLocked(id) {
			p, err := r.products.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if err := r.products.SetStock(p.ID, p.Stock+item.Quantity); err != nil {
				return err
			}
		}
	}
	r.orders[i].Status = StatusCancelled
	return nil
}

func (r *InMemoryRepository) AddItem(_ context.Context, orderID, productID, quantity int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, i, err := r.findLocked(orderID)
	if err != nil {
		return Item{}, err
	}
	if ord.Status != StatusPending {
		return Item{}, ErrInvalidState
	}
	p, err := r.products.GetByID(productID)
	if err != nil {
		return Item{}, err
	}
	if p.Stock < quantity {
		return Item{}, product.ErrInsufficientStock
	}
	if err := r.products.SetStock(p.ID, p.Stock-quantity); err != nil {
		return Item{}, err
	}
	item := Item{
		ID:        r.nextItemID,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     p.Price,
	}
	r.nextItemID++
	r.items = append(r.items, item)
	r.recomputeTotalLocked(i)
	return item, nil
}

func (r *InMemoryRepository) SetItemQuantity(_ context.Context, itemID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.findItemLocked(itemID)
	if j < 0 {
		return ErrItemNotFound
	}
	item := r.items[j]
	ord, i, err := r.findLocked(item.OrderID)
	if err != nil {
		return err
	}
	if ord.Status != StatusPending {
		return ErrInvalidState
	}
	delta := quantity - item.Quantity
	p, err := r.products.GetByID(item.ProductID)
	if err != nil {
		return err
	}
	if delta > 0 && p.Stock < delta {
		return product.ErrInsufficientStock
	}
	if err := r.products.SetStock(p.ID, p.Stock-delta); err != nil {
		return err
	}
	r.items[j].Quantity = quantity
	r.recomputeTotalLocked(i)
	return nil
}

func (r *InMemoryRepository) RemoveItem(_ context.Context, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.findItemLocked(itemID)
	if j < 0 {
		return ErrItemNotFound
	}
	item := r.items[j]
	ord, i, err := r.findLocked(item.OrderID)
	if err != nil {
		return err
	}
	if ord.Status != StatusPending {
		return ErrInvalidState
	}
	p, err := r.products.GetByID(item.ProductID)
	if err != nil {
		return err
	}
	if err := r.products.SetStock(p.ID, p.Stock+item.Quantity); err != nil {
		return err
	}
	r.items = append(r.items[:j], r.items[j+1:]...)
	r.recomputeTotalLocked(i)
	return nil
}

func (r *InMemoryRepository) findLocked(id int) (Order, int, error) {
	for i, ord := range r.orders {
		if ord.ID == id {
			return ord, i, nil
		}
	}
	return Order{}, -1, ErrNotFound
}

func (r *InMemoryRepository) findItemLocked(itemID int) int {
	for j, item := range r.items {
		if item.ID == itemID {
			return j
		}
	}
	return -1
}

func (r *InMemoryRepository) listItemsLocked(orderID int) []Item {
	out := make([]Item, 0)
	for _, item := range r.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out
}

func (r *InMemoryRepository) recomputeTotalLocked(i int) {
	total := decimal.Zero
	for _, item := range r.listItemsLocked(r.orders[i].ID) {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	r.orders[i].Total = total
}

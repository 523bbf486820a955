package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/productshopwm/shop-backend/internal/pickup"
)

// Order status values. Pending is the only non-terminal state: it moves
// to issued on pickup confirmation or to cancelled on explicit
// cancellation, never back.
const (
	StatusPending   = "pending"
	StatusIssued    = "issued"
	StatusCancelled = "cancelled"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidState  = errors.New("order is in a terminal state")
	ErrInvalidStatus = errors.New("invalid order status")
)

type Order struct {
	ID            int             `json:"orderId"`
	UserID        int             `json:"userId"`
	OrderDate     time.Time       `json:"orderDate"`
	Status        string          `json:"paymentStatus"`
	Total         decimal.Decimal `json:"total"`
	IsPickup      bool            `json:"isPickup"`
	PickupPointID *int            `json:"pickupPointId,omitempty"`
	PickupDate    *time.Time      `json:"pickupDate,omitempty"`

	// Read-side projections, filled by the service, never persisted.
	PickupPoint *pickup.Point `json:"pickupPoint,omitempty"`
	Items       []Item        `json:"items,omitempty"`
}

// Item is a line entry within an order. Price is the unit price frozen
// at the moment the item was written, decoupled from later catalog
// price changes.
type Item struct {
	ID          int             `json:"orderItemId"`
	OrderID     int             `json:"orderId"`
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CheckoutLine is one cart row handed to the repository at checkout.
// The unit price is read inside the checkout transaction, not here.
type CheckoutLine struct {
	ProductID int
	Quantity  int
}

// Confirmation is the result of a pickup confirmation. AlreadyIssued
// reports that the order was issued earlier; PickupDate then carries the
// original issuance timestamp.
type Confirmation struct {
	AlreadyIssued bool      `json:"alreadyIssued"`
	PickupDate    time.Time `json:"pickupDate"`
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusIssued, StatusCancelled:
		return true
	}
	return false
}

package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmpty           = errors.New("cart is empty")
)

// Item is a pending quantity request for one product. It is deleted the
// moment it converts into an order item or is removed explicitly.
type Item struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ImageID     *int            `json:"imageId,omitempty"`
}

// Listing is the cart projection returned to clients: the joined items
// plus the total requested quantity.
type Listing struct {
	TotalQuantity int    `json:"totalQuantity"`
	Items         []Item `json:"cartItems"`
}

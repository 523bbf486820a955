package favorite

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFavorite  = errors.New("product is not in favorites")
	ErrInvalidSort  = errors.New("invalid sort field")
	ErrInvalidOrder = errors.New("invalid sort order")
)

// Sortable fields for the favorites listing. Anything outside this
// allow-list is rejected before the query is built.
const (
	SortByAddedDate = "addedDate"
	SortByPrice     = "price"
	SortByStock     = "stock"
)

// Entry is a favorites row joined with its product snapshot.
type Entry struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	AddedDate   time.Time       `json:"addedDate"`
}

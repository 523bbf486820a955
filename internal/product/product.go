package product

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrImageNotFound     = errors.New("product image not found")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is a catalog entry. Price is fixed-point; Stock never goes
// negative after a committed transaction.
type Product struct {
	ID              int             `json:"productId"`
	Name            string          `json:"productName"`
	Description     string          `json:"productDesc"`
	Price           decimal.Decimal `json:"productPrice"`
	Stock           int             `json:"stock"`
	CategoryID      *int            `json:"categoryId,omitempty"`
	Supplier        string          `json:"supplier,omitempty"`
	CountryOfOrigin string          `json:"countryOfOrigin,omitempty"`
	ExpirationDate  *string         `json:"expirationDate,omitempty"`
	IsDeleted       bool            `json:"isDeleted"`
}

// Image holds one stored product picture. Data is omitted from listings
// and served by a dedicated endpoint.
type Image struct {
	ID        int    `json:"imageId"`
	ProductID int    `json:"productId"`
	Name      string `json:"imageName"`
	Data      []byte `json:"-"`
}

package category

import "errors"

var (
	ErrNotFound    = errors.New("category not found")
	ErrDuplicate   = errors.New("category already exists")
	ErrHasProducts = errors.New("category still has products")
)

type Category struct {
	ID   int    `json:"categoryId"`
	Name string `json:"categoryName"`
}

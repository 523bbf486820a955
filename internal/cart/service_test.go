package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/user"
)

func newCartService() (*Service, *product.InMemoryRepository) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Dry food", Price: decimal.RequireFromString("10.00"), Stock: 2},
		{ID: 2, Name: "Litter", Price: decimal.RequireFromString("5.00"), Stock: 0},
	})
	users := user.NewService(user.NewInMemoryRepository([]user.User{{ID: 42}}))
	svc := NewService(NewInMemoryRepository(products.List()), users, product.NewService(products))
	return svc, products
}

func TestAddOneValidatesStock(t *testing.T) {
	svc, _ := newCartService()

	if _, err := svc.AddOne(42, 2); err != product.ErrOutOfStock {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	if _, err := svc.AddOne(42, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddOne(42, 1); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	// stock is 2, a third unit cannot be requested
	if _, err := svc.AddOne(42, 1); err != product.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestAddOneUnknownUserOrProduct(t *testing.T) {
	svc, _ := newCartService()

	if _, err := svc.AddOne(7, 1); err != user.ErrNotFound {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
	if _, err := svc.AddOne(42, 99); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestSetQuantityOnMissingRowLeavesStockUntouched(t *testing.T) {
	svc, products := newCartService()

	err := svc.SetQuantity(42, 1, 2)
	if err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	p, err := products.GetByID(1)
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if p.Stock != 2 {
		t.Fatalf("stock changed to %d", p.Stock)
	}
}

func TestSetQuantityWholeValueAgainstStock(t *testing.T) {
	svc, _ := newCartService()

	if _, err := svc.AddOne(42, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.SetQuantity(42, 1, 2); err != nil {
		t.Fatalf("set to 2 failed: %v", err)
	}
	if err := svc.SetQuantity(42, 1, 3); err != product.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := svc.SetQuantity(42, 1, 0); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestListComputesTotalQuantity(t *testing.T) {
	svc, _ := newCartService()

	if _, err := svc.AddOne(42, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.SetQuantity(42, 1, 2); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	listing, err := svc.List(42)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listing.TotalQuantity != 2 {
		t.Fatalf("expected total quantity 2, got %d", listing.TotalQuantity)
	}
	if len(listing.Items) != 1 || listing.Items[0].ProductName != "Dry food" {
		t.Fatalf("unexpected items %+v", listing.Items)
	}
}

func TestClearRemovesOnlyOwnRows(t *testing.T) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Dry food", Price: decimal.RequireFromString("10.00"), Stock: 5},
	})
	users := user.NewService(user.NewInMemoryRepository([]user.User{{ID: 1}, {ID: 2}}))
	svc := NewService(NewInMemoryRepository(products.List()), users, product.NewService(products))

	if _, err := svc.AddOne(1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddOne(2, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	mine, _ := svc.List(1)
	theirs, _ := svc.List(2)
	if len(mine.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(mine.Items))
	}
	if len(theirs.Items) != 1 {
		t.Fatalf("expected other user's cart intact, got %d items", len(theirs.Items))
	}
}

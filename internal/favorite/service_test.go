package favorite

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/user"
)

func newFavoriteService() *Service {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Collar", Price: decimal.RequireFromString("15.00"), Stock: 3},
		{ID: 2, Name: "Leash", Price: decimal.RequireFromString("8.00"), Stock: 9},
		{ID: 3, Name: "Bowl", Price: decimal.RequireFromString("4.50"), Stock: 1},
	})
	users := user.NewService(user.NewInMemoryRepository([]user.User{{ID: 42}}))
	return NewService(NewInMemoryRepository(products.List()), users, product.NewService(products))
}

func TestAddIsIdempotent(t *testing.T) {
	svc := newFavoriteService()

	if err := svc.Add(42, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Add(42, 1); err != nil {
		t.Fatalf("repeated add should succeed, got %v", err)
	}

	ids, err := svc.ListProductIDs(42)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected single favorite 1, got %v", ids)
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	svc := newFavoriteService()

	if err := svc.Add(42, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Remove(42, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Add(42, 1); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	if err := svc.Remove(42, 1); err != nil {
		t.Fatalf("re-remove failed: %v", err)
	}

	ids, err := svc.ListProductIDs(42)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty favorites, got %v", ids)
	}

	if err := svc.Remove(42, 1); err != ErrNotFavorite {
		t.Fatalf("expected ErrNotFavorite, got %v", err)
	}
}

func TestListSortAllowList(t *testing.T) {
	svc := newFavoriteService()
	for _, id := range []int{1, 2, 3} {
		if err := svc.Add(42, id); err != nil {
			t.Fatalf("add %d failed: %v", id, err)
		}
	}

	byPrice, err := svc.List(42, SortByPrice, "asc")
	if err != nil {
		t.Fatalf("list by price failed: %v", err)
	}
	if byPrice[0].ProductID != 3 || byPrice[2].ProductID != 1 {
		t.Fatalf("unexpected price ordering %+v", byPrice)
	}

	byStock, err := svc.List(42, SortByStock, "desc")
	if err != nil {
		t.Fatalf("list by stock failed: %v", err)
	}
	if byStock[0].ProductID != 2 {
		t.Fatalf("unexpected stock ordering %+v", byStock)
	}

	// default is added-date ascending
	byDefault, err := svc.List(42, "", "")
	if err != nil {
		t.Fatalf("default list failed: %v", err)
	}
	if byDefault[0].ProductID != 1 || byDefault[2].ProductID != 3 {
		t.Fatalf("unexpected default ordering %+v", byDefault)
	}

	if _, err := svc.List(42, "name", "asc"); err != ErrInvalidSort {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}
	if _, err := svc.List(42, SortByPrice, "sideways"); err != ErrInvalidOrder {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestUnknownUserAndProduct(t *testing.T) {
	svc := newFavoriteService()

	if err := svc.Add(7, 1); err != user.ErrNotFound {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
	if err := svc.Add(42, 99); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

package product

import (
	"testing"

	"github.com/shopspring/decimal"
)

func seedProducts() *InMemoryRepository {
	return NewInMemoryRepository([]Product{
		{ID: 1, Name: "Salmon treats", Price: decimal.RequireFromString("7.50"), Stock: 10},
		{ID: 2, Name: "Salmon oil", Price: decimal.RequireFromString("12.00"), Stock: 4},
		{ID: 3, Name: "Catnip", Price: decimal.RequireFromString("3.00"), Stock: 0},
	})
}

func TestSearchPrefixAndID(t *testing.T) {
	svc := NewService(seedProducts())

	byPrefix, err := svc.Search("salmon")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byPrefix) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(byPrefix))
	}

	byID, err := svc.Search("3")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != 3 {
		t.Fatalf("expected product 3, got %+v", byID)
	}

	if _, err := svc.Search("  "); err != ErrEmptyQuery {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	repo := seedProducts()
	svc := NewService(repo)

	if err := svc.SoftDelete(1); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	p, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !p.IsDeleted {
		t.Fatal("product not flagged deleted")
	}

	if err := svc.Restore(1); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	p, _ = repo.GetByID(1)
	if p.IsDeleted {
		t.Fatal("product still flagged deleted")
	}

	if err := svc.SoftDelete(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStockRejectsNegative(t *testing.T) {
	svc := NewService(seedProducts())

	if err := svc.SetStock(1, -1); err == nil {
		t.Fatal("expected error for negative stock")
	}
	if err := svc.SetStock(1, 0); err != nil {
		t.Fatalf("setting stock to zero failed: %v", err)
	}
	p, err := svc.GetByID(1)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if p.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", p.Stock)
	}
}

func TestListByIDsPreservesRequestOrder(t *testing.T) {
	svc := NewService(seedProducts())

	out, err := svc.ListByIDs([]int{3, 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 2 || out[0].ID != 3 || out[1].ID != 1 {
		t.Fatalf("unexpected order %+v", out)
	}
}

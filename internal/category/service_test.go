package category

import "testing"

func TestCreateRejectsCaseInsensitiveDuplicate(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]Category{{ID: 1, Name: "Food"}}, nil))

	if _, err := svc.Create("food"); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := svc.Create("FOOD"); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := svc.Create("Toys"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(""); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestRenameAllowsOwnName(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]Category{
		{ID: 1, Name: "Food"},
		{ID: 2, Name: "Toys"},
	}, nil))

	// renaming to its own casing variant is allowed
	if err := svc.Rename(1, "FOOD"); err != nil {
		t.Fatalf("rename within same category failed: %v", err)
	}
	if err := svc.Rename(1, "toys"); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := svc.Rename(99, "Misc"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBlockedWhileProductsAttached(t *testing.T) {
	svc := NewService(NewInMemoryRepository(
		[]Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Toys"}},
		map[int]int{1: 3},
	))

	if err := svc.Delete(1); err != ErrHasProducts {
		t.Fatalf("expected ErrHasProducts, got %v", err)
	}
	if err := svc.Delete(2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

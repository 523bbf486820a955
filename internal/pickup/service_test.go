package pickup

import "testing"

func TestGetByID(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]Point{{ID: 1, Address: "12 Main St"}}))

	p, err := svc.GetByID(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if p.Address != "12 Main St" {
		t.Fatalf("unexpected point %+v", p)
	}

	if _, err := svc.GetByID(2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(0); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for non-positive id, got %v", err)
	}
}

func TestCreateRequiresAddress(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	if _, err := svc.Create(Point{Address: "  "}); err == nil {
		t.Fatal("expected error for blank address")
	}

	created, err := svc.Create(Point{Address: "3 Oak Ave"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

package user

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPasswordAndRejectsDuplicates(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(User{Email: "a@b.c", Password: "secret", FirstName: "Ann"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Password == "secret" {
		t.Fatal("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret")) != nil {
		t.Fatal("stored hash does not match password")
	}

	if _, err := svc.Register(User{Email: "a@b.c", Password: "other"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register(User{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.Authenticate("a@b.c", "secret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if u.Email != "a@b.c" {
		t.Fatalf("unexpected user %+v", u)
	}

	if _, err := svc.Authenticate("a@b.c", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@b.c", "secret"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSetPasswordReplacesHash(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register(User{Email: "a@b.c", Password: "old"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.SetPassword("a@b.c", "new"); err != nil {
		t.Fatalf("set password failed: %v", err)
	}

	if _, err := svc.Authenticate("a@b.c", "old"); err != ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Authenticate("a@b.c", "new"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := svc.SetPassword("nobody@b.c", "x"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package verification

import (
	"context"
	"testing"
	"time"
)

type recordingSender struct {
	emails []string
	codes  []string
}

func (s *recordingSender) SendConfirmationCode(_ context.Context, email, code string) error {
	s.emails = append(s.emails, email)
	s.codes = append(s.codes, code)
	return nil
}

type recordingSetter struct {
	email    string
	password string
}

func (s *recordingSetter) SetPassword(email, newPassword string) error {
	s.email = email
	s.password = newPassword
	return nil
}

func TestSendAndConfirmSingleUse(t *testing.T) {
	store := NewMemoryStore()
	sender := &recordingSender{}
	svc := NewService(store, sender, &recordingSetter{})
	ctx := context.Background()

	if err := svc.SendCode(ctx, "a@b.c"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(sender.codes) != 1 || len(sender.codes[0]) != 4 {
		t.Fatalf("expected one four-digit code, got %v", sender.codes)
	}

	code := sender.codes[0]
	if err := svc.Confirm(ctx, "a@b.c", code); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	// the code is single use
	if err := svc.Confirm(ctx, "a@b.c", code); err != ErrCodeExpired {
		t.Fatalf("expected ErrCodeExpired on reuse, got %v", err)
	}
}

func TestConfirmWrongCodeKeepsStored(t *testing.T) {
	store := NewMemoryStore()
	sender := &recordingSender{}
	svc := NewService(store, sender, &recordingSetter{})
	ctx := context.Background()

	if err := svc.SendCode(ctx, "a@b.c"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := svc.Confirm(ctx, "a@b.c", "0000-nope"); err != ErrCodeMismatch {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	// a typo must not burn the code
	if err := svc.Confirm(ctx, "a@b.c", sender.codes[0]); err != nil {
		t.Fatalf("confirm after mismatch failed: %v", err)
	}
}

func TestExpiredCodeRejected(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	sender := &recordingSender{}
	svc := NewService(store, sender, &recordingSetter{})
	ctx := context.Background()

	if err := svc.SendCode(ctx, "a@b.c"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	now = now.Add(CodeTTL + time.Minute)
	if err := svc.Confirm(ctx, "a@b.c", sender.codes[0]); err != ErrCodeExpired {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
}

func TestResendReplacesCode(t *testing.T) {
	store := NewMemoryStore()
	sender := &recordingSender{}
	svc := NewService(store, sender, &recordingSetter{})
	ctx := context.Background()

	if err := svc.SendCode(ctx, "a@b.c"); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if err := svc.SendCode(ctx, "a@b.c"); err != nil {
		t.Fatalf("second send failed: %v", err)
	}

	stored, err := store.Get(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored != sender.codes[1] {
		t.Fatalf("expected latest code %q to be stored, got %q", sender.codes[1], stored)
	}
}

func TestConfirmResetSetsPassword(t *testing.T) {
	store := NewMemoryStore()
	sender := &recordingSender{}
	setter := &recordingSetter{}
	svc := NewService(store, sender, setter)
	ctx := context.Background()

	if err := svc.SendCode(ctx, "a@b.c"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := svc.ConfirmReset(ctx, "a@b.c", sender.codes[0], "hunter2"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if setter.email != "a@b.c" || setter.password != "hunter2" {
		t.Fatalf("password not set: %+v", setter)
	}

	// a wrong code never reaches the password setter
	setter.password = ""
	if err := svc.SendCode(ctx, "a@b.c"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := svc.ConfirmReset(ctx, "a@b.c", "wrong", "pw"); err != ErrCodeMismatch {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	if setter.password != "" {
		t.Fatal("password was set despite mismatch")
	}
}

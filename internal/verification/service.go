package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeTTL is how long a confirmation code stays valid after sending.
const CodeTTL = 10 * time.Minute

// CodeSender delivers the generated code to the recipient.
type CodeSender interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// PasswordSetter is the slice of the user service the reset flow needs.
type PasswordSetter interface {
	SetPassword(email, newPassword string) error
}

type Service struct {
	store  Store
	sender CodeSender
	users  PasswordSetter
}

func NewService(store Store, sender CodeSender, users PasswordSetter) *Service {
	return &Service{store: store, sender: sender, users: users}
}

// SendCode generates a fresh four-digit code, stores it with the TTL,
// and emails it. Sending again replaces any previous code for the same
// address.
func (s *Service) SendCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, email, code, CodeTTL); err != nil {
		return err
	}
	if s.sender == nil {
		return nil
	}
	return s.sender.SendConfirmationCode(ctx, email, code)
}

// Confirm checks the submitted code and invalidates it on success. A
// wrong code leaves the stored one in place so the user can retry until
// it expires.
func (s *Service) Confirm(ctx context.Context, email, code string) error {
	stored, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.store.Delete(ctx, email)
}

// ConfirmReset verifies the code and replaces the user's password in
// one step.
func (s *Service) ConfirmReset(ctx context.Context, email, code, newPassword string) error {
	if err := s.Confirm(ctx, email, code); err != nil {
		return err
	}
	return s.users.SetPassword(email, newPassword)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

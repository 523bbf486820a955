// Package verification issues short-lived, single-use confirmation
// codes delivered by email, backing the email-confirmation and
// password-reset flows.
package verification

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCodeExpired  = errors.New("confirmation code expired or never sent")
	ErrCodeMismatch = errors.New("confirmation code does not match")
)

// Store keeps pending codes keyed by recipient email. Entries expire on
// their own; Delete invalidates a code once it has been used.
type Store interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore backs tests. Expiry is checked lazily on Get.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, email)
		return "", ErrCodeExpired
	}
	return entry.code, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

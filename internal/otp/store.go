package otp

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"school-admin-db/pkg/errors"
)

// codeTTL is the validity window of one code.
const codeTTL = 5 * time.Minute

// Store issues and verifies single-use codes for visitor mobile numbers.
// Re-sending overwrites the previous code; a successful verification
// consumes the entry.
type Store interface {
	Put(ctx context.Context, mobile string) (string, error)
	Verify(ctx context.Context, mobile, code string) error
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore keeps codes in a mutex-guarded map. Process-local: behind
// a load balancer use the Redis store instead.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, mobile string) (string, error) {
	code := generateCode()

	s.mu.Lock()
	s.entries[mobile] = memoryEntry{code: code, expiresAt: s.now().Add(codeTTL)}
	s.mu.Unlock()

	return code, nil
}

func (s *MemoryStore) Verify(_ context.Context, mobile, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[mobile]
	if !ok {
		return errors.ErrOTPNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, mobile)
		return errors.ErrOTPExpired
	}
	if entry.code != code {
		return errors.ErrOTPMismatch
	}

	delete(s.entries, mobile)
	return nil
}

func generateCode() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

package wallet

import (
	"context"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	wallets map[string]Wallet
	legacy  map[string]LegacyRecord
}

// NewMemoryRepository constructs an in-memory repository for tests and for
// running without a database.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		wallets: make(map[string]Wallet),
		legacy:  make(map[string]LegacyRecord),
	}
}

// NewMemoryRepositoryWithLegacy seeds the legacy table, for exercising the
// migration path.
func NewMemoryRepositoryWithLegacy(records ...LegacyRecord) Repository {
	repo := &memoryRepository{
		wallets: make(map[string]Wallet),
		legacy:  make(map[string]LegacyRecord, len(records)),
	}
	for _, rec := range records {
		repo.legacy[strings.ToLower(rec.Address)] = rec
	}
	return repo
}

func (r *memoryRepository) ReadAll(_ context.Context) ([]Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		out = append(out, w)
	}
	return out, nil
}

func (r *memoryRepository) Write(_ context.Context, w Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[strings.ToLower(w.Address)] = w
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wallets, strings.ToLower(address))
	return nil
}

func (r *memoryRepository) ReadLegacy(_ context.Context) ([]LegacyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LegacyRecord, 0, len(r.legacy))
	for _, rec := range r.legacy {
		out = append(out, rec)
	}
	return out, nil
}

func (r *memoryRepository) DeleteLegacy(_ context.Context, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.legacy, strings.ToLower(address))
	return nil
}

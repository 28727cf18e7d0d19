package wallet

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/varawallet/varad/internal/event"
)

// ErrAddressRequired reports a create call without an address.
var ErrAddressRequired = errors.New("wallet: address is required")

// CreateParams carries the caller-supplied fields for a new account.
// Style fields are optional overrides; anything left empty is randomized.
type CreateParams struct {
	Address      string
	Type         Type
	Path         string
	AccountID    string
	RootAddress  string
	CardStyle    CardStyle
	Pattern      string
	ColorFrom    string
	ColorTo      string
	ColorPattern string
}

// UpdateParams is a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name          *string
	Type          *Type
	Path          *string
	AccountID     *string
	RootAddress   *string
	CardStyle     *CardStyle
	Pattern       *string
	ColorFrom     *string
	ColorTo       *string
	ColorPattern  *string
	MnemonicSaved *bool
	IsHidden      *bool
	IsMain        *bool
	Subscription  *string
	Position      *int
}

// Store owns the ordered, address-keyed account collection. All reads
// return value copies; mutation happens only through the documented
// operations, which persist through the repository and publish change
// events on the bus as their final step.
type Store struct {
	bus    *event.Bus
	repo   Repository
	logger *slog.Logger
	rng    *rand.Rand

	mu      sync.RWMutex
	wallets []Wallet
}

// NewStore builds an empty store. The random source drives card style
// assignment and is injected so tests can fix it.
func NewStore(bus *event.Bus, repo Repository, rng *rand.Rand, logger *slog.Logger) *Store {
	return &Store{bus: bus, repo: repo, logger: logger, rng: rng}
}

// Load hydrates the collection from the repository, restoring display
// order from persisted positions.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.repo.ReadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = records
	s.renumberLocked()
	return nil
}

// renumberLocked re-sorts by position and reassigns dense indexes. It
// returns the wallets whose position changed so they can be re-persisted.
func (s *Store) renumberLocked() []Wallet {
	sort.SliceStable(s.wallets, func(i, j int) bool {
		return s.wallets[i].Position < s.wallets[j].Position
	})
	var changed []Wallet
	for i := range s.wallets {
		if s.wallets[i].Position != i {
			s.wallets[i].Position = i
			changed = append(changed, s.wallets[i])
		}
	}
	return changed
}

func (s *Store) indexLocked(address string) int {
	for i := range s.wallets {
		if s.wallets[i].Address == address {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context, records ...Wallet) {
	for _, record := range records {
		if err := s.repo.Write(ctx, record); err != nil {
			s.logger.Error("persist wallet", "address", record.Address, "error", err)
		}
	}
}

// Create adds an account, assigning a card style that avoids visual
// collisions while presets last. Creating an address that already exists
// degrades to an update merging the supplied fields. The finalized record
// is emitted as walletCreate last, so consumers (balance check, history
// backfill, subscription registration) react to the event instead of being
// called directly.
func (s *Store) Create(ctx context.Context, name string, params CreateParams) (Wallet, error) {
	address := strings.ToLower(params.Address)
	if address == "" {
		return Wallet{}, ErrAddressRequired
	}

	s.mu.Lock()
	if i := s.indexLocked(address); i >= 0 {
		s.mu.Unlock()
		return s.upsert(ctx, address, name, params)
	}

	style := params.CardStyle
	if style == "" {
		style = pickStyle(s.rng)
	}
	used := make(map[string]struct{}, len(s.wallets))
	for _, w := range s.wallets {
		used[w.ColorFrom] = struct{}{}
	}
	colors := pickColors(s.rng, style, used)
	if params.ColorFrom != "" {
		colors[0] = params.ColorFrom
	}
	if params.ColorTo != "" {
		colors[1] = params.ColorTo
	}
	if params.ColorPattern != "" {
		colors[2] = params.ColorPattern
	}
	pattern := params.Pattern
	if pattern == "" {
		pattern = pickPattern(s.rng)
	}

	wallet := Wallet{
		Address:      address,
		Name:         name,
		CardStyle:    style,
		ColorFrom:    colors[0],
		ColorTo:      colors[1],
		ColorPattern: colors[2],
		Pattern:      pattern,
		Type:         params.Type,
		Path:         params.Path,
		AccountID:    params.AccountID,
		RootAddress:  strings.ToLower(params.RootAddress),
		Version:      recordVersion,
		Position:     len(s.wallets),
	}
	s.wallets = append(s.wallets, wallet)
	s.mu.Unlock()

	s.persist(ctx, wallet)
	s.bus.Emit(event.WalletCreate, wallet)
	return wallet, nil
}

// upsert merges create parameters into an existing record.
func (s *Store) upsert(ctx context.Context, address, name string, params CreateParams) (Wallet, error) {
	patch := UpdateParams{}
	if name != "" {
		patch.Name = &name
	}
	if params.Type != "" {
		t := params.Type
		patch.Type = &t
	}
	if params.Path != "" {
		p := params.Path
		patch.Path = &p
	}
	if params.AccountID != "" {
		id := params.AccountID
		patch.AccountID = &id
	}
	if params.RootAddress != "" {
		root := strings.ToLower(params.RootAddress)
		patch.RootAddress = &root
	}
	if params.CardStyle != "" {
		style := params.CardStyle
		patch.CardStyle = &style
	}
	if params.Pattern != "" {
		p := params.Pattern
		patch.Pattern = &p
	}
	if params.ColorFrom != "" {
		c := params.ColorFrom
		patch.ColorFrom = &c
	}
	if params.ColorTo != "" {
		c := params.ColorTo
		patch.ColorTo = &c
	}
	if params.ColorPattern != "" {
		c := params.ColorPattern
		patch.ColorPattern = &c
	}

	s.Update(ctx, address, patch)

	wallet, _ := s.GetByID(address)
	s.bus.Emit(event.WalletCreate, wallet)
	return wallet, nil
}

// Update merges partial fields into an existing record and restores the
// position ordering. Unknown addresses are ignored.
func (s *Store) Update(ctx context.Context, address string, params UpdateParams) {
	address = strings.ToLower(address)

	s.mu.Lock()
	i := s.indexLocked(address)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	w := &s.wallets[i]
	if params.Name != nil {
		w.Name = *params.Name
	}
	if params.Type != nil {
		w.Type = *params.Type
	}
	if params.Path != nil {
		w.Path = *params.Path
	}
	if params.AccountID != nil {
		w.AccountID = *params.AccountID
	}
	if params.RootAddress != nil {
		w.RootAddress = strings.ToLower(*params.RootAddress)
	}
	if params.CardStyle != nil {
		w.CardStyle = *params.CardStyle
	}
	if params.Pattern != nil {
		w.Pattern = *params.Pattern
	}
	if params.ColorFrom != nil {
		w.ColorFrom = *params.ColorFrom
	}
	if params.ColorTo != nil {
		w.ColorTo = *params.ColorTo
	}
	if params.ColorPattern != nil {
		w.ColorPattern = *params.ColorPattern
	}
	if params.MnemonicSaved != nil {
		w.MnemonicSaved = *params.MnemonicSaved
	}
	if params.IsHidden != nil {
		w.IsHidden = *params.IsHidden
	}
	if params.IsMain != nil {
		w.IsMain = *params.IsMain
	}
	if params.Subscription != nil {
		w.Subscription = *params.Subscription
	}
	if params.Position != nil {
		w.Position = *params.Position
	}
	updated := *w

	changed := s.renumberLocked()
	s.mu.Unlock()

	s.persist(ctx, append(changed, updated)...)
}

// SetCardStyle is a cosmetic-only partial update.
func (s *Store) SetCardStyle(ctx context.Context, address string, params UpdateParams) {
	s.Update(ctx, address, UpdateParams{
		CardStyle:    params.CardStyle,
		Pattern:      params.Pattern,
		ColorFrom:    params.ColorFrom,
		ColorTo:      params.ColorTo,
		ColorPattern: params.ColorPattern,
	})
}

// Remove deletes an account. The walletRemove emission is synchronous, so
// dependent cleanup (revoking the backend subscription, dropping cached
// balances) completes before the call returns. Unknown addresses no-op.
func (s *Store) Remove(ctx context.Context, address string) {
	address = strings.ToLower(address)

	s.mu.Lock()
	i := s.indexLocked(address)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.wallets = append(s.wallets[:i], s.wallets[i+1:]...)
	changed := s.renumberLocked()
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, address); err != nil {
		s.logger.Error("delete wallet", "address", address, "error", err)
	}
	s.persist(ctx, changed...)
	s.bus.Emit(event.WalletRemove, address)
}

// RemoveAll clears the collection.
func (s *Store) RemoveAll(ctx context.Context) {
	s.mu.Lock()
	removed := s.wallets
	s.wallets = nil
	s.mu.Unlock()

	for _, w := range removed {
		if err := s.repo.Delete(ctx, w.Address); err != nil {
			s.logger.Error("delete wallet", "address", w.Address, "error", err)
		}
	}
}

// ToggleHidden flips the hidden flag and waits for visibility consumers to
// finish before returning. Unknown addresses no-op.
func (s *Store) ToggleHidden(ctx context.Context, address string) {
	wallet, ok := s.GetByID(address)
	if !ok {
		return
	}
	hidden := !wallet.IsHidden
	s.Update(ctx, address, UpdateParams{IsHidden: &hidden})
	s.bus.Emit(event.WalletVisibilityChanged, wallet.Address)
}

// GetByID returns a copy of the record for a lowercase-normalized address.
func (s *Store) GetByID(address string) (Wallet, bool) {
	address = strings.ToLower(address)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(address); i >= 0 {
		return s.wallets[i], true
	}
	return Wallet{}, false
}

// GetAll returns the full collection in display order.
func (s *Store) GetAll() []Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Wallet, len(s.wallets))
	copy(out, s.wallets)
	return out
}

// GetAllVisible returns the collection without hidden accounts.
func (s *Store) GetAllVisible() []Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Wallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		if !w.IsHidden {
			out = append(out, w)
		}
	}
	return out
}

// GetForAccount returns the sub-accounts whose root address matches the
// given parent, case-insensitively.
func (s *Store) GetForAccount(parentID string) []Wallet {
	parent := strings.ToLower(parentID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Wallet
	for _, w := range s.wallets {
		if w.RootAddress != "" && w.RootAddress == parent {
			out = append(out, w)
		}
	}
	return out
}

// AddressList returns every account address in display order.
func (s *Store) AddressList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.wallets))
	for i, w := range s.wallets {
		out[i] = w.Address
	}
	return out
}

// Size returns the number of accounts.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wallets)
}

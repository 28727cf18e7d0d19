package balance

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/varawallet/varad/internal/amount"
	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/session"
)

// Snapshot is the full set of balance fields cached for one address. Each
// field defaults to the zero sentinel, never to a nil.
type Snapshot struct {
	Available         amount.Amount
	Staked            amount.Amount
	Vested            amount.Amount
	Locked            amount.Amount
	AvailableForStake amount.Amount
}

// Equal compares every field with exact integer equality.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Available.Equal(o.Available) &&
		s.Staked.Equal(o.Staked) &&
		s.Vested.Equal(o.Vested) &&
		s.Locked.Equal(o.Locked) &&
		s.AvailableForStake.Equal(o.AvailableForStake)
}

// Total is the sum of all held value regardless of lock state.
func (s Snapshot) Total() amount.Amount {
	return s.Available.Add(s.Staked).Add(s.Vested).Add(s.Locked)
}

// VestingBalance carries the vesting-specific fields of an ingest pass.
type VestingBalance struct {
	Vested amount.Amount
	Locked amount.Amount
}

// Engine caches per-address balance snapshots and publishes change events.
// It performs no network I/O itself: a periodic trigger asks an external
// fetcher to poll, and the fetcher reports back through the ingest methods.
// The engine cannot fail; it only reacts to whatever snapshots it is given.
type Engine struct {
	bus      *event.Bus
	session  *session.Session
	logger   *slog.Logger
	interval time.Duration

	mu    sync.RWMutex
	cache map[string]Snapshot
}

// NewEngine builds an engine polling at the given interval.
func NewEngine(bus *event.Bus, sess *session.Session, interval time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		bus:      bus,
		session:  sess,
		logger:   logger,
		interval: interval,
		cache:    make(map[string]Snapshot),
	}
}

// Run emits balanceCheckRequested on every tick until the context ends.
// Ticks while the app is backgrounded are skipped.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.CheckBalance()
		}
	}
}

// CheckBalance requests one poll from the external fetcher. It only fires
// while the app lifecycle state is active.
func (e *Engine) CheckBalance() {
	if e.session.Status() != session.StatusActive {
		return
	}
	e.bus.Emit(event.BalanceCheckRequested, nil)
}

// OnBalancesReceived ingests a complete per-address snapshot map. A cached
// snapshot is replaced wholesale when any field differs; one batched
// balanceSync fires per call if anything changed, carrying the changed
// addresses.
func (e *Engine) OnBalancesReceived(balances map[string]Snapshot) {
	var changed []string

	e.mu.Lock()
	for addr, snapshot := range balances {
		key := strings.ToLower(addr)
		cached, ok := e.cache[key]
		if ok && cached.Equal(snapshot) {
			continue
		}
		e.cache[key] = snapshot
		changed = append(changed, key)
	}
	e.mu.Unlock()

	if len(changed) > 0 {
		e.logger.Debug("balances updated", "addresses", len(changed))
		e.bus.Emit(event.BalanceSync, changed)
	}
}

// OnStakingBalancesReceived updates the staked field per address, firing a
// single stakingBalanceSync if any value differs.
func (e *Engine) OnStakingBalancesReceived(balances map[string]amount.Amount) {
	var changed []string

	e.mu.Lock()
	for addr, staked := range balances {
		key := strings.ToLower(addr)
		cached := e.cache[key]
		if cached.Staked.Equal(staked) {
			continue
		}
		cached.Staked = staked
		e.cache[key] = cached
		changed = append(changed, key)
	}
	e.mu.Unlock()

	if len(changed) > 0 {
		e.bus.Emit(event.StakingBalanceSync, changed)
	}
}

// OnVestingBalancesReceived updates the vested and locked fields per
// address, firing a single vestingBalanceSync if any value differs.
func (e *Engine) OnVestingBalancesReceived(balances map[string]VestingBalance) {
	var changed []string

	e.mu.Lock()
	for addr, vesting := range balances {
		key := strings.ToLower(addr)
		cached := e.cache[key]
		if cached.Vested.Equal(vesting.Vested) && cached.Locked.Equal(vesting.Locked) {
			continue
		}
		cached.Vested = vesting.Vested
		cached.Locked = vesting.Locked
		e.cache[key] = cached
		changed = append(changed, key)
	}
	e.mu.Unlock()

	if len(changed) > 0 {
		e.bus.Emit(event.VestingBalanceSync, changed)
	}
}

func (e *Engine) snapshot(address string) Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cache[strings.ToLower(address)]
}

// Snapshot returns a copy of the cached snapshot for an address. An address
// that has never synchronized yields an all-zero snapshot.
func (e *Engine) Snapshot(address string) Snapshot {
	return e.snapshot(address)
}

// GetAvailable returns the spendable balance for an address.
func (e *Engine) GetAvailable(address string) amount.Amount {
	return e.snapshot(address).Available
}

// GetStaked returns the delegated balance for an address.
func (e *Engine) GetStaked(address string) amount.Amount {
	return e.snapshot(address).Staked
}

// GetVested returns the vested balance for an address.
func (e *Engine) GetVested(address string) amount.Amount {
	return e.snapshot(address).Vested
}

// GetLocked returns the locked balance for an address.
func (e *Engine) GetLocked(address string) amount.Amount {
	return e.snapshot(address).Locked
}

// GetAvailableForStake returns the balance eligible for delegation.
func (e *Engine) GetAvailableForStake(address string) amount.Amount {
	return e.snapshot(address).AvailableForStake
}

// GetTotal returns the sum of all balance fields for an address.
func (e *Engine) GetTotal(address string) amount.Amount {
	return e.snapshot(address).Total()
}

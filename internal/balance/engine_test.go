package balance

import (
	"testing"
	"time"

	"github.com/varawallet/varad/internal/amount"
	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/logging"
	"github.com/varawallet/varad/internal/session"
)

func newTestEngine(t *testing.T) (*Engine, *event.Bus, *session.Session) {
	t.Helper()
	bus := event.NewBus()
	sess := session.New("user-1", 3, time.Minute)
	eng := NewEngine(bus, sess, time.Second, logging.Discard())
	return eng, bus, sess
}

func countEvents(bus *event.Bus, kind event.Kind) *int {
	n := new(int)
	bus.On(kind, func(any) { *n++ })
	return n
}

func TestOnBalancesReceivedDiffAndBatch(t *testing.T) {
	eng, bus, _ := newTestEngine(t)
	syncs := countEvents(bus, event.BalanceSync)

	first := map[string]Snapshot{
		"0xAAA": {Available: amount.FromInt64(100), Staked: amount.FromInt64(50)},
		"0xBBB": {Available: amount.FromInt64(200)},
	}
	eng.OnBalancesReceived(first)
	if *syncs != 1 {
		t.Fatalf("first ingest should emit exactly one batched balanceSync, got %d", *syncs)
	}

	// Identical snapshots change nothing.
	eng.OnBalancesReceived(first)
	if *syncs != 1 {
		t.Fatalf("identical ingest must not emit, got %d", *syncs)
	}

	// One field of one address changes: exactly one more batched event.
	second := map[string]Snapshot{
		"0xAAA": {Available: amount.FromInt64(100), Staked: amount.FromInt64(51)},
		"0xBBB": {Available: amount.FromInt64(200)},
	}
	eng.OnBalancesReceived(second)
	if *syncs != 2 {
		t.Fatalf("single field change should emit one event, got %d total", *syncs)
	}

	// The snapshot is replaced wholesale and keyed case-insensitively.
	if got := eng.GetStaked("0xaaa"); !got.Equal(amount.FromInt64(51)) {
		t.Fatalf("expected staked 51, got %s", got)
	}
}

func TestAccessorsDefaultToZero(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	addr := "0xnever-synced"
	for name, got := range map[string]amount.Amount{
		"available":           eng.GetAvailable(addr),
		"staked":              eng.GetStaked(addr),
		"vested":              eng.GetVested(addr),
		"locked":              eng.GetLocked(addr),
		"available_for_stake": eng.GetAvailableForStake(addr),
		"total":               eng.GetTotal(addr),
	} {
		if !got.IsZero() {
			t.Fatalf("%s should default to zero sentinel, got %s", name, got)
		}
	}
}

func TestGetTotalSumsFields(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	eng.OnBalancesReceived(map[string]Snapshot{
		"0xaaa": {
			Available: amount.FromInt64(1),
			Staked:    amount.FromInt64(2),
			Vested:    amount.FromInt64(3),
			Locked:    amount.FromInt64(4),
		},
	})
	if got := eng.GetTotal("0xAAA"); !got.Equal(amount.FromInt64(10)) {
		t.Fatalf("expected total 10, got %s", got)
	}
}

func TestStakingIngest(t *testing.T) {
	eng, bus, _ := newTestEngine(t)
	syncs := countEvents(bus, event.StakingBalanceSync)

	eng.OnStakingBalancesReceived(map[string]amount.Amount{"0xaaa": amount.FromInt64(7)})
	eng.OnStakingBalancesReceived(map[string]amount.Amount{"0xaaa": amount.FromInt64(7)})
	if *syncs != 1 {
		t.Fatalf("expected one stakingBalanceSync, got %d", *syncs)
	}
	if got := eng.GetStaked("0xaaa"); !got.Equal(amount.FromInt64(7)) {
		t.Fatalf("expected staked 7, got %s", got)
	}
}

func TestVestingIngest(t *testing.T) {
	eng, bus, _ := newTestEngine(t)
	syncs := countEvents(bus, event.VestingBalanceSync)

	update := map[string]VestingBalance{
		"0xaaa": {Vested: amount.FromInt64(5), Locked: amount.FromInt64(9)},
	}
	eng.OnVestingBalancesReceived(update)
	eng.OnVestingBalancesReceived(update)
	if *syncs != 1 {
		t.Fatalf("expected one vestingBalanceSync, got %d", *syncs)
	}
	if got := eng.GetVested("0xaaa"); !got.Equal(amount.FromInt64(5)) {
		t.Fatalf("expected vested 5, got %s", got)
	}
	if got := eng.GetLocked("0xaaa"); !got.Equal(amount.FromInt64(9)) {
		t.Fatalf("expected locked 9, got %s", got)
	}
}

func TestCheckBalanceOnlyWhileActive(t *testing.T) {
	eng, bus, sess := newTestEngine(t)
	checks := countEvents(bus, event.BalanceCheckRequested)

	eng.CheckBalance()
	if *checks != 0 {
		t.Fatalf("inactive app must not request balance checks")
	}

	sess.SetStatus(session.StatusActive)
	eng.CheckBalance()
	if *checks != 1 {
		t.Fatalf("active app should request a balance check, got %d", *checks)
	}
}

package wallet

import (
	"context"
	"math/rand"
	"testing"

	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/logging"
)

func newTestStore(t *testing.T) (*Store, *event.Bus, Repository) {
	t.Helper()
	bus := event.NewBus()
	repo := NewMemoryRepository()
	store := NewStore(bus, repo, rand.New(rand.NewSource(1)), logging.Discard())
	return store, bus, repo
}

func mustCreate(t *testing.T, store *Store, name, address string) Wallet {
	t.Helper()
	w, err := store.Create(context.Background(), name, CreateParams{Address: address, Type: TypeHot})
	if err != nil {
		t.Fatalf("create %s: %v", address, err)
	}
	return w
}

func TestCreateOrderingAndDistinctStyles(t *testing.T) {
	store, bus, _ := newTestStore(t)

	created := 0
	bus.On(event.WalletCreate, func(any) { created++ })

	mustCreate(t, store, "Main", "0xAAA")
	mustCreate(t, store, "Main2", "0xBBB")

	all := store.GetAll()
	if len(all) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(all))
	}
	if all[0].Address != "0xaaa" || all[1].Address != "0xbbb" {
		t.Fatalf("expected lowercase insertion order, got %s %s", all[0].Address, all[1].Address)
	}
	if all[0].Position != 0 || all[1].Position != 1 {
		t.Fatalf("expected positions [0 1], got [%d %d]", all[0].Position, all[1].Position)
	}
	if all[0].ColorFrom == all[1].ColorFrom {
		t.Fatalf("expected distinct color presets while presets remain")
	}
	if created != 2 {
		t.Fatalf("expected 2 walletCreate events, got %d", created)
	}
}

func TestCreateDedupMergesFields(t *testing.T) {
	store, _, _ := newTestStore(t)

	first := mustCreate(t, store, "Main", "0xAAA")

	second, err := store.Create(context.Background(), "Renamed", CreateParams{
		Address: "0xaAa",
		Type:    TypeLedger,
		Path:    "m/44'/60'/0'/0/0",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if store.Size() != 1 {
		t.Fatalf("duplicate address must not create a second record")
	}
	if second.Name != "Renamed" || second.Type != TypeLedger || second.Path != "m/44'/60'/0'/0/0" {
		t.Fatalf("second call's fields were not merged: %+v", second)
	}
	if second.Position != first.Position {
		t.Fatalf("upsert must keep the original position")
	}
	if second.ColorFrom != first.ColorFrom {
		t.Fatalf("upsert without overrides must keep the original style")
	}
}

func TestPositionsStayDenseAcrossMutations(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, "A", "0xA1")
	mustCreate(t, store, "B", "0xA2")
	mustCreate(t, store, "C", "0xA3")

	store.Remove(ctx, "0xA2")

	all := store.GetAll()
	if len(all) != 2 {
		t.Fatalf("expected 2 wallets after remove, got %d", len(all))
	}
	for i, w := range all {
		if w.Position != i {
			t.Fatalf("positions must be dense after remove, got %d at index %d", w.Position, i)
		}
	}
	if all[0].Address != "0xa1" || all[1].Address != "0xa3" {
		t.Fatalf("display order must survive removal, got %v", store.AddressList())
	}
}

func TestUpdateReordersByPosition(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, "A", "0xA1")
	mustCreate(t, store, "B", "0xA2")
	mustCreate(t, store, "C", "0xA3")

	// Move the last account to the front.
	front := -1
	store.Update(ctx, "0xA3", UpdateParams{Position: &front})

	list := store.AddressList()
	if list[0] != "0xa3" || list[1] != "0xa1" || list[2] != "0xa2" {
		t.Fatalf("expected [0xa3 0xa1 0xa2], got %v", list)
	}
	for i, w := range store.GetAll() {
		if w.Position != i {
			t.Fatalf("positions must be renumbered densely, got %d at %d", w.Position, i)
		}
	}
}

func TestUpdateUnknownAddressNoops(t *testing.T) {
	store, _, _ := newTestStore(t)
	name := "ghost"
	store.Update(context.Background(), "0xdead", UpdateParams{Name: &name})
	if store.Size() != 0 {
		t.Fatalf("updating an unknown address must not create records")
	}
}

func TestToggleHiddenFiltersVisible(t *testing.T) {
	store, bus, _ := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, "A", "0xAAA")
	mustCreate(t, store, "B", "0xBBB")

	visibilityChanges := 0
	bus.On(event.WalletVisibilityChanged, func(any) { visibilityChanges++ })

	store.ToggleHidden(ctx, "0xAAA")

	visible := store.GetAllVisible()
	if len(visible) != 1 || visible[0].Address != "0xbbb" {
		t.Fatalf("expected only 0xbbb visible, got %v", visible)
	}
	if len(store.GetAll()) != 2 {
		t.Fatalf("hidden wallet must remain in the full collection")
	}
	if visibilityChanges != 1 {
		t.Fatalf("expected one walletVisibilityChanged, got %d", visibilityChanges)
	}

	store.ToggleHidden(ctx, "0xAAA")
	if len(store.GetAllVisible()) != 2 {
		t.Fatalf("second toggle must restore visibility")
	}
}

func TestRemoveEmitsAfterCleanupCompletes(t *testing.T) {
	store, bus, _ := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, "A", "0xAAA")

	var removed []string
	bus.On(event.WalletRemove, func(payload any) {
		removed = append(removed, payload.(string))
	})

	store.Remove(ctx, "0xAAA")
	if len(removed) != 1 || removed[0] != "0xaaa" {
		t.Fatalf("expected walletRemove for 0xaaa before return, got %v", removed)
	}

	// Unknown address: no event, no error.
	store.Remove(ctx, "0xAAA")
	if len(removed) != 1 {
		t.Fatalf("removing an unknown address must not emit")
	}
}

func TestGetForAccountMatchesRootAddress(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "Ledger 1", CreateParams{
		Address:     "0xC1",
		Type:        TypeLedger,
		RootAddress: "0xROOT",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, "Ledger 2", CreateParams{
		Address:     "0xC2",
		Type:        TypeLedger,
		RootAddress: "0xroot",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	mustCreate(t, store, "Solo", "0xC3")

	children := store.GetForAccount("0xRoOt")
	if len(children) != 2 {
		t.Fatalf("expected 2 sub-accounts, got %d", len(children))
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, bus, repo := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, "A", "0xA1")
	mustCreate(t, store, "B", "0xA2")
	front := -1
	store.Update(ctx, "0xA2", UpdateParams{Position: &front})

	reloaded := NewStore(bus, repo, rand.New(rand.NewSource(2)), logging.Discard())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	want := store.AddressList()
	got := reloaded.AddressList()
	if len(got) != len(want) {
		t.Fatalf("expected %d wallets after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reload order mismatch: %v vs %v", got, want)
		}
	}
}

func TestRemoveAll(t *testing.T) {
	store, _, repo := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, "A", "0xA1")
	mustCreate(t, store, "B", "0xA2")

	store.RemoveAll(ctx)
	if store.Size() != 0 {
		t.Fatalf("expected empty store")
	}
	persisted, err := repo.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("expected repository cleared, got %d records", len(persisted))
	}
}

package wallet

import (
	"context"
	"math/rand"
	"testing"

	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/logging"
)

func TestMigrateMovesLegacyRecords(t *testing.T) {
	bus := event.NewBus()
	repo := NewMemoryRepositoryWithLegacy(
		LegacyRecord{Address: "0xAAA", Name: "Old main", AccountID: "acc-1", Path: "m/44'/60'/0'/0/0", Type: TypeMnemonic},
		LegacyRecord{Address: "0xBBB", Name: "Old ledger", AccountID: "acc-2", Type: TypeLedger, Pattern: "card-circle-2", CardStyle: StyleFlat},
	)
	store := NewStore(bus, repo, rand.New(rand.NewSource(1)), logging.Discard())
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if store.Size() != 2 {
		t.Fatalf("expected 2 migrated wallets, got %d", store.Size())
	}
	w, ok := store.GetByID("0xaaa")
	if !ok {
		t.Fatalf("migrated wallet missing")
	}
	if w.Name != "Old main" || w.AccountID != "acc-1" || w.Type != TypeMnemonic {
		t.Fatalf("identity fields lost in migration: %+v", w)
	}
	if w.ColorFrom == "" || w.Pattern == "" {
		t.Fatalf("cosmetics must be derived when the legacy record lacks them")
	}

	carried, ok := store.GetByID("0xbbb")
	if !ok {
		t.Fatalf("second migrated wallet missing")
	}
	if carried.Pattern != "card-circle-2" || carried.CardStyle != StyleFlat {
		t.Fatalf("legacy cosmetics should be carried when present: %+v", carried)
	}

	legacy, err := repo.ReadLegacy(ctx)
	if err != nil {
		t.Fatalf("read legacy: %v", err)
	}
	if len(legacy) != 0 {
		t.Fatalf("legacy records must be deleted after migration, %d left", len(legacy))
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	bus := event.NewBus()
	repo := NewMemoryRepositoryWithLegacy(
		LegacyRecord{Address: "0xAAA", Name: "Old main", Type: TypeHot},
	)
	store := NewStore(bus, repo, rand.New(rand.NewSource(1)), logging.Discard())
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	before := store.GetAll()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	after := store.GetAll()

	if len(before) != len(after) {
		t.Fatalf("second migration changed the store: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("second migration mutated record %d: %+v vs %+v", i, before[i], after[i])
		}
	}
}

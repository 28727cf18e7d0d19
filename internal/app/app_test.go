package app

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/varawallet/varad/internal/auth"
	"github.com/varawallet/varad/internal/balance"
	"github.com/varawallet/varad/internal/config"
	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/logging"
	"github.com/varawallet/varad/internal/provider"
	"github.com/varawallet/varad/internal/session"
	"github.com/varawallet/varad/internal/wallet"
)

type fakeBiometry struct {
	err error
}

func (f fakeBiometry) Authenticate(context.Context) error {
	return f.err
}

func newTestApp(t *testing.T, cfg config.Config, biometry auth.Biometry) (*App, *event.Bus) {
	t.Helper()

	logger := logging.Discard()
	bus := event.NewBus()
	sess := session.New(cfg.UserUID, cfg.PinAttemptsLimit, cfg.IdleTimeout)
	authSvc := auth.NewService(bus, sess, auth.NewMemoryCredentialStore(), biometry, cfg.DeviceUID, cfg.BiometryEnabled, logger)
	engine := balance.NewEngine(bus, sess, cfg.BalanceInterval, logger)
	store := wallet.NewStore(bus, wallet.NewMemoryRepository(), rand.New(rand.NewSource(1)), logger)
	registry, err := provider.NewRegistry(bus, provider.TestNetwork, provider.Defaults()...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if _, err := authSvc.SetPin(context.Background(), "123456"); err != nil {
		t.Fatalf("seed pin: %v", err)
	}

	return New(cfg, bus, sess, authSvc, engine, store, registry, logger), bus
}

func baseConfig() config.Config {
	return config.Config{
		UserUID:          "user-1",
		DeviceUID:        "device-1",
		PinAttemptsLimit: 5,
		IdleTimeout:      time.Minute,
		BalanceInterval:  time.Second,
		BiometryEnabled:  true,
		Onboarded:        true,
	}
}

func TestInitSkipsWhenNotOnboarded(t *testing.T) {
	cfg := baseConfig()
	cfg.Onboarded = false
	a, _ := newTestApp(t, cfg, fakeBiometry{})

	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if a.Session().IsUnlocked() {
		t.Fatalf("init before onboarding must not unlock")
	}
	if a.Session().Status() != session.StatusInactive {
		t.Fatalf("init before onboarding must not activate the session")
	}
}

func TestInitUnlocksAndRequestsFirstPoll(t *testing.T) {
	a, bus := newTestApp(t, baseConfig(), fakeBiometry{})

	polls := 0
	bus.On(event.BalanceCheckRequested, func(any) { polls++ })

	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !a.Session().IsUnlocked() {
		t.Fatalf("init must unlock the session")
	}
	if a.Session().Status() != session.StatusActive {
		t.Fatalf("init must activate the session")
	}
	if polls != 1 {
		t.Fatalf("init must request exactly one balance poll, got %d", polls)
	}
}

func TestInitSkipPinOnLogin(t *testing.T) {
	cfg := baseConfig()
	cfg.SkipPinOnLogin = true
	cfg.BiometryEnabled = false
	a, _ := newTestApp(t, cfg, fakeBiometry{err: errors.New("no sensor")})

	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !a.Session().IsUnlocked() {
		t.Fatalf("skip-pin init must unlock without running the race")
	}
}

func TestStatusChangeIsIgnoredWhenUnchanged(t *testing.T) {
	a, bus := newTestApp(t, baseConfig(), fakeBiometry{})
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	activations := 0
	bus.On(event.AppActive, func(any) { activations++ })

	if err := a.OnAppStatusChanged(context.Background(), session.StatusActive); err != nil {
		t.Fatalf("status change: %v", err)
	}
	if activations != 0 {
		t.Fatalf("repeating the current status must not re-announce appActive")
	}
}

func TestForegroundWithinIdleWindowSkipsReauth(t *testing.T) {
	cfg := baseConfig()
	cfg.SkipPinOnLogin = true
	a, bus := newTestApp(t, cfg, fakeBiometry{err: errors.New("sensor off")})
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	activations := 0
	bus.On(event.AppActive, func(any) { activations++ })

	ctx := context.Background()
	if err := a.OnAppStatusChanged(ctx, session.StatusInactive); err != nil {
		t.Fatalf("background: %v", err)
	}
	// Idle threshold is one minute, so the unlock must survive this
	// round-trip even with the sensor failing.
	if err := a.OnAppStatusChanged(ctx, session.StatusActive); err != nil {
		t.Fatalf("foreground: %v", err)
	}
	if !a.Session().IsUnlocked() {
		t.Fatalf("session must stay unlocked within the idle window")
	}
	if activations != 1 {
		t.Fatalf("expected one appActive, got %d", activations)
	}
}

func TestForegroundAfterIdleThresholdReauths(t *testing.T) {
	cfg := baseConfig()
	cfg.IdleTimeout = time.Millisecond
	a, bus := newTestApp(t, cfg, fakeBiometry{})
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	activations := 0
	bus.On(event.AppActive, func(any) { activations++ })

	ctx := context.Background()
	if err := a.OnAppStatusChanged(ctx, session.StatusInactive); err != nil {
		t.Fatalf("background: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	// The biometric path succeeds, so the re-lock resolves inline.
	if err := a.OnAppStatusChanged(ctx, session.StatusActive); err != nil {
		t.Fatalf("foreground: %v", err)
	}
	if !a.Session().IsUnlocked() {
		t.Fatalf("session must be unlocked again after the re-lock race")
	}
	if activations != 1 {
		t.Fatalf("expected one appActive after re-auth, got %d", activations)
	}
}

package session

import (
	"testing"
	"time"
)

func TestPinAttemptsAndBan(t *testing.T) {
	s := New("user-1", 3, time.Minute)

	if s.PinBanned() {
		t.Fatalf("fresh session must not be banned")
	}
	s.FailureEnter()
	s.FailureEnter()
	if s.PinAttempts() != 2 || s.PinBanned() {
		t.Fatalf("expected 2 attempts unbanned, got %d banned=%v", s.PinAttempts(), s.PinBanned())
	}
	if banned := s.FailureEnter(); !banned {
		t.Fatalf("third failure should ban")
	}
	if s.CanEnter() {
		t.Fatalf("banned session must reject further entries")
	}

	s.SuccessEnter()
	if s.PinAttempts() != 0 || s.PinBanned() {
		t.Fatalf("success must reset the counter")
	}
}

func TestIdleTimeout(t *testing.T) {
	s := New("user-1", 3, 10*time.Minute)

	if s.IsOutdatedLastActivity() {
		t.Fatalf("no recorded activity means not outdated")
	}

	current := time.Now()
	s.now = func() time.Time { return current }
	s.TouchLastActivity()

	current = current.Add(5 * time.Minute)
	if s.IsOutdatedLastActivity() {
		t.Fatalf("5m of 10m idle threshold should not be outdated")
	}

	current = current.Add(6 * time.Minute)
	if !s.IsOutdatedLastActivity() {
		t.Fatalf("11m exceeds the idle threshold")
	}
}

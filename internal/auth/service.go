package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/session"
)

// ErrAuthMismatch reports a wrong PIN. It is recovered locally by
// re-prompting; each occurrence increments the session attempt counter.
var ErrAuthMismatch = errors.New("auth: pin mismatch")

// ErrPinBanned reports that the failure threshold has been crossed and PIN
// entry is disabled until an external unban action.
var ErrPinBanned = errors.New("auth: pin banned")

// pinLength is the raw PIN size. A stored secret of exactly this length
// predates sealing and is upgraded on first read.
const pinLength = 6

// State enumerates the positions of the authentication machine.
type State int

const (
	StateLocked State = iota
	StateAuthenticating
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateUnlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

// Service arbitrates the biometric and PIN login paths over the event bus.
// A single Auth call races both paths; the first one to signal success
// unlocks the session and the loser is left to drain without effect.
type Service struct {
	bus      *event.Bus
	session  *session.Session
	creds    CredentialStore
	biometry Biometry
	logger   *slog.Logger

	deviceUID       string
	biometryEnabled bool

	mu    sync.Mutex
	state State
}

// NewService wires the authentication machine. biometryEnabled reflects the
// user setting; the sensor itself may still fail at runtime.
func NewService(bus *event.Bus, sess *session.Session, creds CredentialStore, biometry Biometry, deviceUID string, biometryEnabled bool, logger *slog.Logger) *Service {
	return &Service{
		bus:             bus,
		session:         sess,
		creds:           creds,
		biometry:        biometry,
		logger:          logger,
		deviceUID:       deviceUID,
		biometryEnabled: biometryEnabled,
		state:           StateLocked,
	}
}

// State returns the machine's current position.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) setState(v State) {
	s.mu.Lock()
	s.state = v
	s.mu.Unlock()
}

// IsUnlocked reports whether the session has been authenticated.
func (s *Service) IsUnlocked() bool {
	return s.session.IsUnlocked()
}

// PinAttempts exposes the session failure counter.
func (s *Service) PinAttempts() int {
	return s.session.PinAttempts()
}

// PinBanned exposes the session lockout flag.
func (s *Service) PinBanned() bool {
	return s.session.PinBanned()
}

// SubmitPin feeds one PIN entry from an input surface into the machine.
// The result surfaces through enterPinSuccess / errorPin events.
func (s *Service) SubmitPin(pin string) {
	s.bus.Emit(event.PinEntered, pin)
}

// Auth drives Locked -> Authenticating -> Unlocked. The biometric and PIN
// paths run as independent tasks feeding a single-slot completion channel;
// the first writer wins and the loser's eventual result is discarded.
func (s *Service) Auth(ctx context.Context) error {
	s.setState(StateAuthenticating)

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	settle := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	go func() { settle(s.makeBiometryAuth(raceCtx)) }()
	go func() { settle(s.makePinAuth(raceCtx)) }()

	select {
	case err := <-done:
		if err != nil {
			s.setState(StateLocked)
			return err
		}
	case <-ctx.Done():
		s.setState(StateLocked)
		return ctx.Err()
	}

	s.session.SetAuthenticated(true)
	s.setState(StateUnlocked)
	return nil
}

// makeBiometryAuth attempts the sensor when the setting is on and the PIN
// is not banned. A sensor failure does not fail the auth; it defers to the
// PIN path's success signal instead.
func (s *Service) makeBiometryAuth(ctx context.Context) error {
	if s.biometryEnabled && !s.session.PinBanned() {
		err := s.biometry.Authenticate(ctx)
		if err == nil {
			s.session.SetAuthenticated(true)
			return nil
		}
		s.logger.Warn("biometry auth failed", "error", err)
	}

	_, err := s.bus.AwaitDone(ctx, event.EnterPinSuccess, 0)
	return err
}

// makePinAuth loads the stored credential once, then consumes pinEntered
// events until a match. Each mismatch increments the attempt counter and
// emits errorPin.
func (s *Service) makePinAuth(ctx context.Context) error {
	if s.session.IsUnlocked() {
		return nil
	}

	password, err := s.GetPassword(ctx)
	if err != nil {
		return err
	}

	entries := make(chan string, 8)
	sub := s.bus.On(event.PinEntered, func(payload any) {
		pin, ok := payload.(string)
		if !ok {
			return
		}
		select {
		case entries <- pin:
		default:
		}
	})
	defer s.bus.Off(sub)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pin := <-entries:
			if !s.session.CanEnter() {
				s.bus.Emit(event.ErrorPin, ErrPinBanned.Error())
				continue
			}
			if pin == password {
				s.session.SuccessEnter()
				s.bus.Emit(event.EnterPinSuccess, nil)
				return nil
			}
			if banned := s.session.FailureEnter(); banned {
				s.logger.Warn("pin banned", "attempts", s.session.PinAttempts())
			}
			s.bus.Emit(event.ErrorPin, ErrAuthMismatch.Error())
		}
	}
}

// ComparePin checks a candidate PIN against the stored credential without
// driving the state machine.
func (s *Service) ComparePin(ctx context.Context, pin string) error {
	if !s.session.CanEnter() {
		return ErrPinBanned
	}
	password, err := s.GetPassword(ctx)
	if err != nil {
		return err
	}
	if password != pin {
		return ErrAuthMismatch
	}
	return nil
}

// GetPassword retrieves and unseals the stored credential for the session
// owner. A stored 6-character value is a pre-encryption legacy credential
// and is transparently re-sealed before use.
func (s *Service) GetPassword(ctx context.Context) (string, error) {
	secret, err := s.creds.GetSecret(ctx, s.session.UserID())
	if err != nil {
		return "", err
	}

	if len(secret) == pinLength {
		secret, err = s.SetPin(ctx, secret)
		if err != nil {
			return "", err
		}
	}

	return unsealSecret(s.deviceUID, secret)
}

// SetPin seals and persists a new PIN, returning the persisted form.
func (s *Service) SetPin(ctx context.Context, pin string) (string, error) {
	sealed, err := sealSecret(s.deviceUID, pin)
	if err != nil {
		return "", err
	}
	if err := s.creds.SetSecret(ctx, s.session.UserID(), sealed); err != nil {
		return "", err
	}
	return sealed, nil
}

package session

import (
	"sync"
	"time"
)

// Status mirrors the process foreground state.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
)

// Session is the process-wide authentication and lifecycle state. It lives
// for the duration of the process and is reset on restart. All mutation
// goes through its methods; callers never hold its fields directly.
type Session struct {
	mu            sync.Mutex
	userID        string
	authenticated bool
	status        Status
	pinAttempts   int
	attemptsLimit int
	idleTimeout   time.Duration
	lastActivity  time.Time

	now func() time.Time
}

// New builds a fresh locked session for the given user identity.
// attemptsLimit bounds failed PIN entries before the account is banned;
// idleTimeout controls re-locking after backgrounding.
func New(userID string, attemptsLimit int, idleTimeout time.Duration) *Session {
	return &Session{
		userID:        userID,
		attemptsLimit: attemptsLimit,
		idleTimeout:   idleTimeout,
		now:           time.Now,
	}
}

// UserID returns the owner identity bound to stored credentials.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// IsUnlocked reports whether the session has been authenticated.
func (s *Session) IsUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// SetAuthenticated flips the unlocked flag.
func (s *Session) SetAuthenticated(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = v
}

// Status returns the current app lifecycle status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetStatus records the app lifecycle status.
func (s *Session) SetStatus(v Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = v
}

// PinAttempts returns the count of consecutive failed PIN entries.
func (s *Session) PinAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinAttempts
}

// PinBanned reports whether the failure threshold has been crossed.
func (s *Session) PinBanned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banned()
}

func (s *Session) banned() bool {
	return s.attemptsLimit > 0 && s.pinAttempts >= s.attemptsLimit
}

// CanEnter reports whether further PIN attempts are allowed.
func (s *Session) CanEnter() bool {
	return !s.PinBanned()
}

// SuccessEnter resets the failure counter after a correct PIN.
func (s *Session) SuccessEnter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinAttempts = 0
}

// FailureEnter increments the failure counter and reports whether the
// session is now banned.
func (s *Session) FailureEnter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinAttempts++
	return s.banned()
}

// TouchLastActivity stamps the moment the app went to background while
// authenticated.
func (s *Session) TouchLastActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()
}

// IsOutdatedLastActivity reports whether the idle threshold has elapsed
// since the last recorded activity.
func (s *Session) IsOutdatedLastActivity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastActivity.IsZero() {
		return false
	}
	return s.now().Sub(s.lastActivity) > s.idleTimeout
}

package event

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Kind names a bus event. The set is closed: downstream consumers switch on
// these constants instead of free-form strings.
type Kind string

const (
	WalletCreate            Kind = "walletCreate"
	WalletRemove            Kind = "walletRemove"
	WalletVisibilityChanged Kind = "walletVisibilityChanged"
	BalanceCheckRequested   Kind = "balanceCheckRequested"
	BalanceSync             Kind = "balanceSync"
	StakingBalanceSync      Kind = "stakingBalanceSync"
	VestingBalanceSync      Kind = "vestingBalanceSync"
	ProviderChanged         Kind = "providerChanged"
	PinEntered              Kind = "pinEntered"
	EnterPinSuccess         Kind = "enterPinSuccess"
	ErrorPin                Kind = "errorPin"
	AppActive               Kind = "appActive"
)

// ErrTimeout reports that an AwaitDone deadline elapsed before the event
// fired. Callers distinguish it with errors.Is to offer a retry.
var ErrTimeout = errors.New("event: wait timed out")

// Listener receives the payload of an emitted event.
type Listener func(payload any)

// Subscription identifies a registered listener so it can be removed.
type Subscription struct {
	kind Kind
	fn   Listener
}

// Bus is a process-wide publish/subscribe hub. Emission is synchronous and
// in registration order; listeners added or removed during an emission do
// not affect the dispatch already in flight.
type Bus struct {
	mu        sync.Mutex
	listeners map[Kind][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[Kind][]*Subscription)}
}

// On registers a listener for the given kind and returns its subscription.
func (b *Bus) On(kind Kind, fn Listener) *Subscription {
	sub := &Subscription{kind: kind, fn: fn}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[kind] = append(b.listeners[kind], sub)
	return sub
}

// Off removes a subscription. Unknown subscriptions are ignored.
func (b *Bus) Off(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.listeners[sub.kind]
	for i, s := range subs {
		if s == sub {
			b.listeners[sub.kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit synchronously delivers payload to every listener registered for kind
// at the moment of the call. It returns after all listeners have run.
func (b *Bus) Emit(kind Kind, payload any) {
	b.mu.Lock()
	subs := make([]*Subscription, len(b.listeners[kind]))
	copy(subs, b.listeners[kind])
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(payload)
	}
}

// AwaitDone suspends until the next emission of kind and returns its
// payload. A non-positive timeout waits indefinitely; otherwise ErrTimeout
// is returned once the deadline elapses. The temporary listener is removed
// on every exit path, so repeated timed-out waits do not accumulate.
func (b *Bus) AwaitDone(ctx context.Context, kind Kind, timeout time.Duration) (any, error) {
	fired := make(chan any, 1)
	sub := b.On(kind, func(payload any) {
		select {
		case fired <- payload:
		default:
		}
	})
	defer b.Off(sub)

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case payload := <-fired:
		return payload, nil
	case <-deadline:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Fired reports which event won an AwaitFirst race.
type Fired struct {
	Kind    Kind
	Payload any
}

// AwaitFirst suspends until whichever of the given kinds fires first. All
// competing listeners feed a single-slot channel; the first writer wins and
// later emissions of the losing kinds are no-ops for this call.
func (b *Bus) AwaitFirst(ctx context.Context, kinds ...Kind) (Fired, error) {
	winner := make(chan Fired, 1)
	subs := make([]*Subscription, 0, len(kinds))
	for _, kind := range kinds {
		k := kind
		subs = append(subs, b.On(k, func(payload any) {
			select {
			case winner <- Fired{Kind: k, Payload: payload}:
			default:
			}
		}))
	}
	defer func() {
		for _, sub := range subs {
			b.Off(sub)
		}
	}()

	select {
	case first := <-winner:
		return first, nil
	case <-ctx.Done():
		return Fired{}, ctx.Err()
	}
}

// ListenerCount reports how many listeners are registered for kind. Used
// by callers that need to know a waiter is in place before emitting.
func (b *Bus) ListenerCount(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[kind])
}

package notification

import (
	"context"
	"log/slog"

	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/provider"
	"github.com/varawallet/varad/internal/wallet"
)

const (
	// KindWalletCreated announces a new account to downstream systems so
	// they can start tracking its activity.
	KindWalletCreated = "wallet_created"
	// KindWalletRemoved revokes downstream tracking for a deleted account.
	KindWalletRemoved = "wallet_removed"
	// KindProviderChanged announces a network switch.
	KindProviderChanged = "provider_changed"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}

// Consumer bridges bus events to the notifier. Account creation registers
// the address downstream and triggers an immediate balance poll so the new
// card shows a value before the next tick; removal revokes the registration
// before the removing call returns, since emission is synchronous.
type Consumer struct {
	bus      *event.Bus
	notifier Notifier
	poll     func()
	logger   *slog.Logger

	subs []*event.Subscription
}

// NewConsumer wires a consumer. poll is invoked after each account creation
// and may be nil.
func NewConsumer(bus *event.Bus, notifier Notifier, poll func(), logger *slog.Logger) *Consumer {
	return &Consumer{bus: bus, notifier: notifier, poll: poll, logger: logger}
}

// Start subscribes to account and network change events.
func (c *Consumer) Start() {
	c.subs = append(c.subs,
		c.bus.On(event.WalletCreate, c.onWalletCreate),
		c.bus.On(event.WalletRemove, c.onWalletRemove),
		c.bus.On(event.ProviderChanged, c.onProviderChanged),
	)
}

// Stop removes the consumer's subscriptions.
func (c *Consumer) Stop() {
	for _, sub := range c.subs {
		c.bus.Off(sub)
	}
	c.subs = nil
}

func (c *Consumer) onWalletCreate(payload any) {
	w, ok := payload.(wallet.Wallet)
	if !ok {
		return
	}
	c.send(Message{Kind: KindWalletCreated, Destination: w.Address, Body: w.Name})
	if c.poll != nil {
		c.poll()
	}
}

func (c *Consumer) onWalletRemove(payload any) {
	address, ok := payload.(string)
	if !ok {
		return
	}
	c.send(Message{Kind: KindWalletRemoved, Destination: address})
}

func (c *Consumer) onProviderChanged(payload any) {
	p, ok := payload.(provider.Provider)
	if !ok {
		return
	}
	c.send(Message{Kind: KindProviderChanged, Body: p.ID})
}

func (c *Consumer) send(message Message) {
	if err := c.notifier.Send(context.Background(), message); err != nil {
		c.logger.Warn("notification send", "kind", message.Kind, "error", err)
	}
}

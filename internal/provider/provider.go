package provider

import (
	"errors"
	"sync"

	"github.com/varawallet/varad/internal/event"
)

// ErrUnknown is returned when switching to a network id that was never
// registered. The previously active provider stays in effect.
var ErrUnknown = errors.New("provider: unknown id")

// Well-known network ids. Production builds start on mainnet, everything
// else on the test network.
const (
	MainNetwork = "vara_11235-1"
	TestNetwork = "vara_54211-3"
)

// Provider describes one blockchain network configuration.
type Provider struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ChainID         uint64 `json:"chain_id"`
	EVMEndpoint     string `json:"evm_endpoint"`
	IndexerEndpoint string `json:"indexer_endpoint"`
}

// Registry holds the known networks and the single active one. Switching is
// atomic from the caller's perspective: either the new provider fully
// replaces the old one and a providerChanged event fires, or the call is
// rejected and nothing changes.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
	bus       *event.Bus
}

// NewRegistry builds a registry seeded with the given providers. The
// activeID must refer to one of them.
func NewRegistry(bus *event.Bus, activeID string, providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers)), bus: bus}
	for _, p := range providers {
		r.providers[p.ID] = p
	}
	if _, ok := r.providers[activeID]; !ok {
		return nil, ErrUnknown
	}
	r.active = activeID
	return r, nil
}

// Defaults returns the built-in main and test network configurations.
func Defaults() []Provider {
	return []Provider{
		{
			ID:              MainNetwork,
			Name:            "Vara Network",
			ChainID:         11235,
			EVMEndpoint:     "https://rpc.eth.vara.network",
			IndexerEndpoint: "https://indexer.vara.network",
		},
		{
			ID:              TestNetwork,
			Name:            "Vara Testedge",
			ChainID:         54211,
			EVMEndpoint:     "https://rpc.eth.testedge2.vara.network",
			IndexerEndpoint: "https://indexer.testedge2.vara.network",
		},
	}
}

// DefaultNetwork picks the startup network for an environment name.
func DefaultNetwork(env string) string {
	switch env {
	case "production", "distribution":
		return MainNetwork
	default:
		return TestNetwork
	}
}

// Register adds or replaces a provider configuration.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = p
}

// Get looks up a provider by id.
func (r *Registry) Get(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	return p, ok
}

// Active returns the currently selected provider.
func (r *Registry) Active() Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[r.active]
}

// Switch makes the given provider active and emits providerChanged. An
// unknown id is rejected with ErrUnknown and leaves the active provider
// untouched.
func (r *Registry) Switch(id string) error {
	r.mu.Lock()
	p, ok := r.providers[id]
	if !ok {
		r.mu.Unlock()
		return ErrUnknown
	}
	r.active = id
	r.mu.Unlock()

	r.bus.Emit(event.ProviderChanged, p)
	return nil
}

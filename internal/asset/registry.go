package asset

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Registry is a thread-safe registry of known assets.
type Registry struct {
	byID map[AssetID]*Asset
	mu   sync.RWMutex
}

// NewRegistry creates a new empty asset registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[AssetID]*Asset),
	}
}

// Register adds an asset to the registry.
// Panics if an asset with the same ID is already registered.
func (r *Registry) Register(a *Asset) {
	if a == nil {
		panic("asset: cannot register nil asset")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := a.ID()
	if _, exists := r.byID[id]; exists {
		panic(fmt.Sprintf("asset: %s already registered", id))
	}
	r.add(a)
}

// Ensure returns the registered asset with a's ID, registering a first when
// the ID is unknown. Tokens discovered in pool snapshots go through here so
// every leg of the same token shares one *Asset.
func (r *Registry) Ensure(a *Asset) (*Asset, error) {
	if a == nil {
		return nil, ErrNilAsset
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[a.ID()]; ok {
		if existing.Decimals() != a.Decimals() {
			return nil, fmt.Errorf("asset: %s registered with %d decimals, got %d",
				a.ID(), existing.Decimals(), a.Decimals())
		}
		return existing, nil
	}
	r.add(a)
	return a, nil
}

func (r *Registry) add(a *Asset) {
	r.byID[a.ID()] = a
}

// Get retrieves an asset by its ID.
func (r *Registry) Get(id AssetID) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	return a, ok
}

// GetToken retrieves a token by chain and address.
func (r *Registry) GetToken(chainID uint64, address common.Address) (*Asset, bool) {
	return r.Get(NewTokenAssetID(chainID, address))
}

// Count returns the number of registered assets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

package providers

import (
	"fmt"
	"sync"
)

// Registry holds data providers in registration order.
type Registry struct {
	mu        sync.RWMutex
	providers []DataProvider
}

var (
	instanceOnce sync.Once
	instance     *Registry
)

// Instance returns the process-wide registry with the built-in providers.
// Populate it at startup, before concurrent readers begin.
func Instance() *Registry {
	instanceOnce.Do(func() {
		instance = NewDefaultRegistry()
	})
	return instance
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with the built-in providers.
func NewDefaultRegistry(opts ...Option) *Registry {
	reg := NewRegistry()
	for _, provider := range Builtins(opts...) {
		reg.Register(provider)
	}
	return reg
}

// Register appends provider. Nil providers are ignored; duplicate names are
// not detected and the earlier registration keeps winning.
func (r *Registry) Register(provider DataProvider) {
	if r == nil || provider == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = append(r.providers, provider)
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []DataProvider {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]DataProvider(nil), r.providers...)
}

// Find returns the first provider that fits data.
func (r *Registry) Find(data any) (DataProvider, bool) {
	for _, provider := range r.Providers() {
		if provider.IsFit(data) {
			return provider, true
		}
	}
	return nil, false
}

// Generate runs the first fitting provider. ErrNoProvider is returned when
// nothing fits; callers decide whether that is fatal.
func (r *Registry) Generate(data any) (any, error) {
	provider, ok := r.Find(data)
	if !ok {
		return nil, fmt.Errorf("%w (%T)", ErrNoProvider, data)
	}
	value, err := provider.Generate(data)
	if err != nil {
		return nil, fmt.Errorf("providers: %s: %w", provider.Name(), err)
	}
	return value, nil
}

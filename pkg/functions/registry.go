package functions

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Func is a function callable from expressions with positional arguments.
type Func func(params []any) (any, error)

// Registered names of the built-in helpers.
const (
	NameHTMLDate        = "htmlDate"
	NameHTMLDateOrEmpty = "htmlDateOrEmpty"
	NameSubtractYears   = "subtractYears"
	NameIsMinor         = "isMinor"
	NameObjectValues    = "objectValues"
)

// Registry stores expression functions by name. Names are case-sensitive.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]Func),
	}
}

// NewDefaultRegistry returns a registry with the built-in helpers.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(NameHTMLDate, HTMLDate)
	reg.MustRegister(NameHTMLDateOrEmpty, HTMLDateOrEmpty)
	reg.MustRegister(NameSubtractYears, SubtractYears)
	reg.MustRegister(NameIsMinor, IsMinor)
	reg.MustRegister(NameObjectValues, ObjectValues)
	return reg
}

// Register adds fn under name. Duplicate names return an error.
func (r *Registry) Register(name string, fn Func) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("functions: function name is required")
	}
	if fn == nil {
		return fmt.Errorf("functions: function %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("functions: function %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup retrieves a function by name.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]
	return fn, ok
}

// Call invokes the named function. Errors returned by the function are
// passed through unchanged.
func (r *Registry) Call(name string, params []any) (any, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFunction, name)
	}
	return fn(params)
}

// Names returns a sorted list of function names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package datatypes

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-campform/pkg/model"
)

// PropertyName is the question property that stores the resolved type.
const PropertyName = model.PropertyCampDataType

// FitFunc decides whether a camp data type applies to a question. property is
// the name of the property being resolved and options carries optional
// caller context; the built-in predicates ignore both.
type FitFunc func(question model.Question, property string, options map[string]any) bool

// CampDataType pairs a stable identifier with a localized label and a fit
// predicate.
type CampDataType struct {
	Value string
	Label model.Label
	Fit   FitFunc
}

// Text returns the label for locale.
func (t CampDataType) Text(locale string) string {
	return t.Label.Resolve(locale)
}

// Registry holds camp data types in registration order. It is meant to be
// populated once at startup and only read afterwards; the lock keeps late
// registrations safe regardless.
type Registry struct {
	mu    sync.RWMutex
	types []CampDataType
}

var _ model.Decorator = (*Registry)(nil)

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry constructs a registry with the built-in camp data types
// registered.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.registerBuiltins()
	return reg
}

// Register appends a camp data type. Entries without a value or predicate are
// ignored.
func (r *Registry) Register(t CampDataType) {
	if r == nil || t.Fit == nil {
		return
	}
	t.Value = strings.TrimSpace(t.Value)
	if t.Value == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types = append(r.types, t)
}

// All returns the registered types in registration order.
func (r *Registry) All() []CampDataType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]CampDataType(nil), r.types...)
}

// Resolve returns the first registered type whose predicate fits question.
func (r *Registry) Resolve(question model.Question) (CampDataType, bool) {
	return r.ResolveWith(question, nil)
}

// ResolveWith is Resolve with caller options forwarded to the predicates.
func (r *Registry) ResolveWith(question model.Question, options map[string]any) (CampDataType, bool) {
	if question == nil {
		return CampDataType{}, false
	}
	for _, entry := range r.All() {
		if entry.Fit(question, PropertyName, options) {
			return entry, true
		}
	}
	return CampDataType{}, false
}

// Fitting returns every registered type whose predicate fits question, in
// registration order. More than one entry means automatic resolution picked
// the first of several candidates.
func (r *Registry) Fitting(question model.Question) []CampDataType {
	if question == nil {
		return nil
	}
	var out []CampDataType
	for _, entry := range r.All() {
		if entry.Fit(question, PropertyName, nil) {
			out = append(out, entry)
		}
	}
	return out
}

// Lookup returns the first registered type with the given value.
func (r *Registry) Lookup(value string) (CampDataType, bool) {
	value = strings.TrimSpace(value)
	for _, entry := range r.All() {
		if entry.Value == value {
			return entry, true
		}
	}
	return CampDataType{}, false
}

// Duplicates lists values registered more than once, in first-seen order.
func (r *Registry) Duplicates() []string {
	seen := make(map[string]int)
	var order []string
	for _, entry := range r.All() {
		if seen[entry.Value] == 0 {
			order = append(order, entry.Value)
		}
		seen[entry.Value]++
	}
	var out []string
	for _, value := range order {
		if seen[value] > 1 {
			out = append(out, value)
		}
	}
	return out
}

// Locales returns every locale used by a registered label, sorted.
func (r *Registry) Locales() []string {
	set := make(map[string]struct{})
	for _, entry := range r.All() {
		for locale := range entry.Label {
			set[locale] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for locale := range set {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Decorate implements model.Decorator, storing the resolved type under
// campDataType for every element that has no explicit value. Containers are
// visited for their children but never annotated themselves.
func (r *Registry) Decorate(survey *model.Survey) error {
	if r == nil || survey == nil {
		return nil
	}
	return survey.Walk(func(el *model.Element) error {
		if el.IsContainer() || strings.TrimSpace(el.CampDataType) != "" {
			return nil
		}
		if resolved, ok := r.Resolve(el); ok {
			el.CampDataType = resolved.Value
		}
		return nil
	})
}

package datatypes

// Property descriptor defaults registered with the form builder.
const (
	PropertyClassName   = "question"
	PropertyType        = "campDataMapping"
	PropertyCategory    = "general"
	DefaultVisibleIndex = 1
)

// Choice is a dropdown entry in the form builder's property panel.
type Choice struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// PropertyInfo is the static descriptor the form builder uses to render the
// campDataType dropdown on every question.
type PropertyInfo struct {
	Name         string   `json:"name"`
	ClassName    string   `json:"className"`
	Type         string   `json:"type"`
	IsRequired   bool     `json:"isRequired"`
	Category     string   `json:"category"`
	VisibleIndex int      `json:"visibleIndex"`
	Choices      []Choice `json:"choices,omitempty"`
}

// DefaultPropertyInfo returns the campDataType descriptor.
func DefaultPropertyInfo() PropertyInfo {
	return PropertyInfo{
		Name:         PropertyName,
		ClassName:    PropertyClassName,
		Type:         PropertyType,
		IsRequired:   false,
		Category:     PropertyCategory,
		VisibleIndex: DefaultVisibleIndex,
	}
}

// WithChoices returns a copy of the descriptor listing the registry's types
// labelled for locale.
func (p PropertyInfo) WithChoices(reg *Registry, locale string) PropertyInfo {
	p.Choices = reg.Choices(locale)
	return p
}

// Choices lists every registered type as a dropdown entry, in registration
// order.
func (r *Registry) Choices(locale string) []Choice {
	types := r.All()
	out := make([]Choice, 0, len(types))
	for _, t := range types {
		out = append(out, Choice{Value: t.Value, Text: t.Text(locale)})
	}
	return out
}

package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrStopWalk ends Survey.Walk early without reporting an error.
var ErrStopWalk = errors.New("model: stop walk")

// Property names with dedicated Survey or Page fields.
const (
	PropertyLocale = "locale"
	PropertyPages  = "pages"
)

// Page groups top-level elements. Properties keeps every other page setting
// (description, navigation options and so on) so the page encodes back
// unchanged.
type Page struct {
	Name       string
	Title      Label
	VisibleIf  string
	Elements   []Element
	Properties map[string]any
}

// Survey is a SurveyJS survey definition. Single-page surveys may declare
// Elements directly instead of Pages. Survey-level settings without a field
// of their own live in Properties.
type Survey struct {
	Name       string
	Title      Label
	Locale     string
	Pages      []Page
	Elements   []Element
	Properties map[string]any
}

// UnmarshalJSON decodes a SurveyJS page object.
func (p *Page) UnmarshalJSON(data []byte) error {
	out := Page{}
	props, err := decodeObject(data, "page", map[string]any{
		PropertyName:      &out.Name,
		PropertyTitle:     &out.Title,
		PropertyVisibleIf: &out.VisibleIf,
		PropertyElements:  &out.Elements,
	})
	if err != nil {
		return err
	}
	out.Properties = props
	*p = out
	return nil
}

// MarshalJSON encodes the page back into SurveyJS shape.
func (p Page) MarshalJSON() ([]byte, error) {
	out := copyProperties(p.Properties, 4)
	setString(out, PropertyName, p.Name)
	setString(out, PropertyVisibleIf, p.VisibleIf)
	if len(p.Title) > 0 {
		out[PropertyTitle] = p.Title
	}
	if len(p.Elements) > 0 {
		out[PropertyElements] = p.Elements
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a SurveyJS survey object.
func (s *Survey) UnmarshalJSON(data []byte) error {
	out := Survey{}
	props, err := decodeObject(data, "survey", map[string]any{
		PropertyName:     &out.Name,
		PropertyTitle:    &out.Title,
		PropertyLocale:   &out.Locale,
		PropertyPages:    &out.Pages,
		PropertyElements: &out.Elements,
	})
	if err != nil {
		return err
	}
	out.Properties = props
	*s = out
	return nil
}

// MarshalJSON encodes the survey back into SurveyJS shape.
func (s Survey) MarshalJSON() ([]byte, error) {
	out := copyProperties(s.Properties, 5)
	setString(out, PropertyName, s.Name)
	setString(out, PropertyLocale, s.Locale)
	if len(s.Title) > 0 {
		out[PropertyTitle] = s.Title
	}
	if len(s.Pages) > 0 {
		out[PropertyPages] = s.Pages
	}
	if len(s.Elements) > 0 {
		out[PropertyElements] = s.Elements
	}
	return json.Marshal(out)
}

// decodeObject decodes the keys listed in fields into their targets and
// returns every other key as a generic property map.
func decodeObject(data []byte, kind string, fields map[string]any) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("model: decode %s: %w", kind, err)
	}
	var props map[string]any
	for key, value := range raw {
		if target, known := fields[key]; known {
			if err := json.Unmarshal(value, target); err != nil {
				return nil, fmt.Errorf("model: %s property %q: %w", kind, key, err)
			}
			continue
		}
		var prop any
		if err := json.Unmarshal(value, &prop); err != nil {
			return nil, fmt.Errorf("model: %s property %q: %w", kind, key, err)
		}
		if props == nil {
			props = make(map[string]any)
		}
		props[key] = prop
	}
	return props, nil
}

func copyProperties(props map[string]any, extra int) map[string]any {
	out := make(map[string]any, len(props)+extra)
	for key, value := range props {
		out[key] = value
	}
	return out
}

// Walk visits every element depth first in document order, including panel
// children and dynamic panel templates. Returning ErrStopWalk stops the walk
// and Walk returns nil.
func (s *Survey) Walk(fn func(*Element) error) error {
	if s == nil || fn == nil {
		return nil
	}
	for i := range s.Pages {
		if err := walkElements(s.Pages[i].Elements, fn); err != nil {
			return filterStop(err)
		}
	}
	return filterStop(walkElements(s.Elements, fn))
}

// Questions returns pointers to every non-container element in document order.
func (s *Survey) Questions() []*Element {
	var out []*Element
	_ = s.Walk(func(el *Element) error {
		if !el.IsContainer() {
			out = append(out, el)
		}
		return nil
	})
	return out
}

// Find returns the first element with the given name.
func (s *Survey) Find(name string) (*Element, bool) {
	var found *Element
	_ = s.Walk(func(el *Element) error {
		if el.Name == name {
			found = el
			return ErrStopWalk
		}
		return nil
	})
	return found, found != nil
}

func walkElements(elements []Element, fn func(*Element) error) error {
	for i := range elements {
		el := &elements[i]
		if err := fn(el); err != nil {
			return err
		}
		if err := walkElements(el.Elements, fn); err != nil {
			return err
		}
		if err := walkElements(el.TemplateElements, fn); err != nil {
			return err
		}
	}
	return nil
}

func filterStop(err error) error {
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

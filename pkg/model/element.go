package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Element is a SurveyJS element (question or panel) decoded from JSON.
type Element struct {
	Type             string
	Name             string
	Title            Label
	InputType        string
	CampDataType     string
	VisibleIf        string
	Elements         []Element
	TemplateElements []Element
	Properties       map[string]any
}

var _ Question = (*Element)(nil)

// GetType returns the SurveyJS element type.
func (e *Element) GetType() string {
	if e == nil {
		return ""
	}
	return e.Type
}

// GetPropertyValue returns a configured property. Text questions report the
// SurveyJS default input type when none was configured.
func (e *Element) GetPropertyValue(name string) any {
	if e == nil {
		return nil
	}
	switch name {
	case PropertyType:
		return e.Type
	case PropertyName:
		return e.Name
	case PropertyTitle:
		return e.Title
	case PropertyInputType:
		if e.InputType == "" && e.Type == TypeText {
			return DefaultInputType
		}
		return e.InputType
	case PropertyCampDataType:
		return e.CampDataType
	case PropertyVisibleIf:
		return e.VisibleIf
	}
	if e.Properties == nil {
		return nil
	}
	return e.Properties[name]
}

// SetPropertyValue stores a property, routing known names to their fields.
func (e *Element) SetPropertyValue(name string, value any) {
	if e == nil {
		return
	}
	text, isString := value.(string)
	switch name {
	case PropertyType:
		if isString {
			e.Type = text
			return
		}
	case PropertyName:
		if isString {
			e.Name = text
			return
		}
	case PropertyInputType:
		if isString {
			e.InputType = text
			return
		}
	case PropertyCampDataType:
		if isString {
			e.CampDataType = text
			return
		}
	case PropertyVisibleIf:
		if isString {
			e.VisibleIf = text
			return
		}
	}
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[name] = value
}

// IsContainer reports whether the element holds nested elements.
func (e *Element) IsContainer() bool {
	if e == nil {
		return false
	}
	return e.Type == TypePanel || e.Type == TypePanelDynamic || len(e.Elements) > 0 || len(e.TemplateElements) > 0
}

// UnmarshalJSON decodes a SurveyJS element object.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode element: %w", err)
	}

	out := Element{}
	for key, value := range raw {
		var err error
		switch key {
		case PropertyType:
			err = json.Unmarshal(value, &out.Type)
		case PropertyName:
			err = json.Unmarshal(value, &out.Name)
		case PropertyTitle:
			err = json.Unmarshal(value, &out.Title)
		case PropertyInputType:
			err = json.Unmarshal(value, &out.InputType)
		case PropertyCampDataType:
			err = json.Unmarshal(value, &out.CampDataType)
		case PropertyVisibleIf:
			err = json.Unmarshal(value, &out.VisibleIf)
		case PropertyElements:
			err = json.Unmarshal(value, &out.Elements)
		case PropertyTemplateElements:
			err = json.Unmarshal(value, &out.TemplateElements)
		default:
			var prop any
			err = json.Unmarshal(value, &prop)
			if err == nil {
				if out.Properties == nil {
					out.Properties = make(map[string]any)
				}
				out.Properties[key] = prop
			}
		}
		if err != nil {
			return fmt.Errorf("model: element property %q: %w", key, err)
		}
	}
	out.Type = strings.TrimSpace(out.Type)
	*e = out
	return nil
}

// MarshalJSON encodes the element back into SurveyJS shape.
func (e Element) MarshalJSON() ([]byte, error) {
	out := copyProperties(e.Properties, 8)
	setString(out, PropertyType, e.Type)
	setString(out, PropertyName, e.Name)
	setString(out, PropertyInputType, e.InputType)
	setString(out, PropertyCampDataType, e.CampDataType)
	setString(out, PropertyVisibleIf, e.VisibleIf)
	if len(e.Title) > 0 {
		out[PropertyTitle] = e.Title
	}
	if len(e.Elements) > 0 {
		out[PropertyElements] = e.Elements
	}
	if len(e.TemplateElements) > 0 {
		out[PropertyTemplateElements] = e.TemplateElements
	}
	return json.Marshal(out)
}

func setString(out map[string]any, key, value string) {
	if value != "" {
		out[key] = value
	}
}

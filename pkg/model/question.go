package model

// Question is the capability the data-type registry needs from a form
// question: its runtime type and read access to configured properties.
type Question interface {
	GetType() string
	GetPropertyValue(name string) any
}

// Property names with dedicated Element fields.
const (
	PropertyType             = "type"
	PropertyName             = "name"
	PropertyTitle            = "title"
	PropertyInputType        = "inputType"
	PropertyCampDataType     = "campDataType"
	PropertyVisibleIf        = "visibleIf"
	PropertyElements         = "elements"
	PropertyTemplateElements = "templateElements"
)

// Question types referenced by the camp layer. SurveyJS ships many more; the
// custom "address", "date_of_birth" and "role" types are registered by the
// camp frontend.
const (
	TypeText         = "text"
	TypeCheckbox     = "checkbox"
	TypeDropdown     = "dropdown"
	TypePanel        = "panel"
	TypePanelDynamic = "paneldynamic"
	TypeAddress      = "address"
	TypeDateOfBirth  = "date_of_birth"
	TypeRole         = "role"
)

// DefaultInputType is what SurveyJS reports for a text question that never
// configured inputType.
const DefaultInputType = "text"

// StringProperty reads a property and returns it when it is a string.
func StringProperty(q Question, name string) string {
	if q == nil {
		return ""
	}
	value, _ := q.GetPropertyValue(name).(string)
	return value
}

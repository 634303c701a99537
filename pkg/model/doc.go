// Package model defines the SurveyJS-shaped survey model the camp form layer
// operates on. Questions are consumed through the narrow Question interface
// (GetType/GetPropertyValue) so any concrete representation can be matched by
// the data-type registry. Element is the default implementation decoded from
// SurveyJS JSON; properties without a dedicated struct field survive a
// decode/encode round trip through Element.Properties.
package model

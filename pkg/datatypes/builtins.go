package datatypes

import "github.com/goliatone/go-campform/pkg/model"

// Built-in camp data type identifiers.
const (
	TypeAddress     = "address"
	TypeDateOfBirth = "date_of_birth"
	TypeEmail       = "email"
	TypeFirstName   = "first_name"
	TypeLastName    = "last_name"
	TypeRole        = "role"
	TypeWaitingList = "waiting_list"
)

// Builtins returns the built-in camp data types in registration order.
//
// first_name and last_name share the same predicate, so automatic resolution
// always yields first_name for plain text inputs and last_name is only ever
// assigned explicitly.
func Builtins() []CampDataType {
	return []CampDataType{
		{
			Value: TypeAddress,
			Label: model.NewLabel("en", "Address", "de", "Adresse", "fr", "Adresse"),
			Fit: func(q model.Question, _ string, _ map[string]any) bool {
				return q.GetType() == model.TypeAddress
			},
		},
		{
			Value: TypeDateOfBirth,
			Label: model.NewLabel("en", "Date of birth", "de", "Geburtsdatum", "fr", "Date de naissance"),
			Fit: func(q model.Question, _ string, _ map[string]any) bool {
				return q.GetType() == model.TypeDateOfBirth || textInput(q, "date")
			},
		},
		{
			Value: TypeEmail,
			Label: model.NewLabel("en", "Email", "de", "E-Mail", "fr", "E-mail"),
			Fit: func(q model.Question, _ string, _ map[string]any) bool {
				return textInput(q, "email")
			},
		},
		{
			Value: TypeFirstName,
			Label: model.NewLabel("en", "First name", "de", "Vorname", "fr", "Prénom"),
			Fit: func(q model.Question, _ string, _ map[string]any) bool {
				return textInput(q, "text")
			},
		},
		{
			Value: TypeLastName,
			Label: model.NewLabel("en", "Last name", "de", "Nachname", "fr", "Nom de famille"),
			Fit: func(q model.Question, _ string, _ map[string]any) bool {
				return textInput(q, "text")
			},
		},
		{
			Value: TypeRole,
			Label: model.NewLabel("en", "Role", "de", "Rolle", "fr", "Rôle"),
			Fit: func(q model.Question, _ string, _ map[string]any) bool {
				t := q.GetType()
				return t == model.TypeRole || t == model.TypeDropdown
			},
		},
		{
			Value: TypeWaitingList,
			Label: model.NewLabel("en", "Waiting list", "de", "Warteliste", "fr", "Liste d'attente"),
			Fit: func(q model.Question, _ string, _ map[string]any) bool {
				return q.GetType() == model.TypeCheckbox
			},
		},
	}
}

func (r *Registry) registerBuiltins() {
	for _, t := range Builtins() {
		r.Register(t)
	}
}

func textInput(q model.Question, inputType string) bool {
	return q.GetType() == model.TypeText && model.StringProperty(q, model.PropertyInputType) == inputType
}

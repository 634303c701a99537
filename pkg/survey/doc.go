// Package survey loads SurveyJS definitions from JSON or YAML files and keeps
// them in a name-addressed Store. Loaded surveys can be passed through
// decorators, typically the camp data-type registry, before they are stored.
package survey

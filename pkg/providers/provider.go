package providers

import "errors"

// ErrNoProvider is returned when no registered provider fits the data.
var ErrNoProvider = errors.New("providers: no provider fits data")

// DataProvider derives a value from data. Generate must only be called when
// IsFit returned true for the same input.
type DataProvider interface {
	Name() string
	Title() string
	IsFit(data any) bool
	Generate(data any) (any, error)
}

// Definition adapts plain functions into a DataProvider.
type Definition struct {
	ID        string
	Label     string
	FitFunc   func(data any) bool
	Generator func(data any) (any, error)
}

var _ DataProvider = Definition{}

// Name returns the provider identifier.
func (d Definition) Name() string { return d.ID }

// Title returns the display label.
func (d Definition) Title() string { return d.Label }

// IsFit delegates to FitFunc; a nil FitFunc never fits.
func (d Definition) IsFit(data any) bool {
	if d.FitFunc == nil {
		return false
	}
	return d.FitFunc(data)
}

// Generate delegates to Generator; a nil Generator returns data unchanged.
func (d Definition) Generate(data any) (any, error) {
	if d.Generator == nil {
		return data, nil
	}
	return d.Generator(data)
}

package campform

import (
	"io/fs"

	"github.com/goliatone/go-campform/pkg/datatypes"
	"github.com/goliatone/go-campform/pkg/expression"
	"github.com/goliatone/go-campform/pkg/functions"
	"github.com/goliatone/go-campform/pkg/providers"
	"github.com/goliatone/go-campform/pkg/survey"
)

// CampDataType aliases datatypes.CampDataType for callers registering custom
// types through the root package.
type CampDataType = datatypes.CampDataType

// DataProvider aliases providers.DataProvider.
type DataProvider = providers.DataProvider

// NewTypeRegistry returns a camp data type registry with the built-in types.
func NewTypeRegistry() *datatypes.Registry {
	return datatypes.NewDefaultRegistry()
}

// NewProviderRegistry returns a fresh provider registry with the built-in
// providers. Use providers.Instance for the shared one.
func NewProviderRegistry(options ...providers.Option) *providers.Registry {
	return providers.NewDefaultRegistry(options...)
}

// NewFunctions returns the expression function table (htmlDate,
// subtractYears, isMinor, objectValues and friends).
func NewFunctions() *functions.Registry {
	return functions.NewDefaultRegistry()
}

// NewEvaluator returns an expression evaluator wired to the default function
// table.
func NewEvaluator(options ...expression.Option) *expression.Evaluator {
	return expression.New(options...)
}

// LoadSurveys parses every survey in fsys and tags untagged questions using
// reg. A nil registry uses the built-in types.
func LoadSurveys(fsys fs.FS, reg *datatypes.Registry) (*survey.Store, error) {
	if reg == nil {
		reg = datatypes.NewDefaultRegistry()
	}
	return survey.LoadFS(fsys, survey.WithDecorator(reg))
}

package campdata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-campform/pkg/datatypes"
	"github.com/goliatone/go-campform/pkg/expression"
	"github.com/goliatone/go-campform/pkg/functions"
	"github.com/goliatone/go-campform/pkg/model"
	"github.com/goliatone/go-campform/pkg/providers"
)

// Record holds the raw answer for each camp data type. When several
// questions share a type the first answered one in document order wins.
type Record map[string]any

// Option configures Extract.
type Option func(*extractConfig)

type extractConfig struct {
	rule   expression.Rule
	extras map[string]any
}

// WithEvaluator skips questions whose visibleIf rule does not hold for the
// submitted answers.
func WithEvaluator(rule expression.Rule) Option {
	return func(cfg *extractConfig) {
		cfg.rule = rule
	}
}

// WithExtras exposes additional context to visibleIf rules.
func WithExtras(extras map[string]any) Option {
	return func(cfg *extractConfig) {
		cfg.extras = extras
	}
}

// Extract collects the answers of tagged questions into a Record. Missing and
// nil answers are left out. With an evaluator, questions on hidden pages or
// inside hidden panels are skipped as well.
func Extract(survey *model.Survey, answers map[string]any, opts ...Option) (Record, error) {
	cfg := &extractConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	record := Record{}
	ctx := expression.Context{Values: answers, Extras: cfg.extras}
	questions, err := reachableQuestions(survey, cfg.rule, ctx)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		value := strings.TrimSpace(q.CampDataType)
		if value == "" {
			continue
		}
		if _, done := record[value]; done {
			continue
		}
		answer, ok := answers[q.Name]
		if !ok || answer == nil {
			continue
		}
		visible, err := isVisible(cfg.rule, q.VisibleIf, q.Name, ctx)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}
		record[value] = answer
	}
	return record, nil
}

// Types returns the data types present in the record, sorted.
func (r Record) Types() []string {
	out := make([]string, 0, len(r))
	for key := range r {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// DateOfBirth parses the date_of_birth answer.
func (r Record) DateOfBirth() (time.Time, bool) {
	raw, ok := r[datatypes.TypeDateOfBirth]
	if !ok {
		return time.Time{}, false
	}
	return functions.ParseDate(raw)
}

// FullName joins the first and last name answers.
func (r Record) FullName() string {
	parts := make([]string, 0, 2)
	for _, key := range []string{datatypes.TypeFirstName, datatypes.TypeLastName} {
		if text := r.text(key); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Email returns the trimmed email answer.
func (r Record) Email() string {
	return r.text(datatypes.TypeEmail)
}

// OnWaitingList reports whether the waiting list checkbox was ticked. A
// checkbox answer is the list of selected choices.
func (r Record) OnWaitingList() bool {
	switch v := r[datatypes.TypeWaitingList].(type) {
	case bool:
		return v
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// IsMinor reports whether the participant is younger than the adult age at
// reference. A missing or unparsable birth date is an error.
func IsMinor(record Record, reference time.Time) (bool, error) {
	result, err := functions.IsMinor([]any{record[datatypes.TypeDateOfBirth], reference})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (r Record) text(key string) string {
	text, _ := r[key].(string)
	return strings.TrimSpace(text)
}

// Display renders every value in the record through the first fitting
// provider. Values no provider fits are missing from the result and reported
// together in the returned error, which wraps providers.ErrNoProvider.
func Display(record Record, registry *providers.Registry) (map[string]any, error) {
	if registry == nil {
		registry = providers.Instance()
	}
	out := make(map[string]any, len(record))
	var errs []error
	for _, key := range record.Types() {
		value, err := registry.Generate(record[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("campdata: %s: %w", key, err))
			continue
		}
		out[key] = value
	}
	return out, errors.Join(errs...)
}

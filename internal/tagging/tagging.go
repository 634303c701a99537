// Package tagging assigns camp data types to survey questions, asking the
// user whenever automatic resolution is ambiguous or finds nothing.
package tagging

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-campform/internal/prompt"
	"github.com/goliatone/go-campform/pkg/datatypes"
	"github.com/goliatone/go-campform/pkg/model"
)

// NoneOption is the label offered to leave a question untagged.
const NoneOption = "(none)"

// Decision records the outcome for one question.
type Decision struct {
	Question string
	Value    string
	Prompted bool
}

// Tagger walks a survey and stores the chosen type on each question.
type Tagger struct {
	Registry *datatypes.Registry
	Driver   prompt.Driver
	Locale   string
}

// Tag resolves every untagged question. Questions that fit exactly one type
// are tagged silently; the rest are offered to the driver. Without a driver
// Tag behaves like Registry.Decorate.
func (t Tagger) Tag(ctx context.Context, survey *model.Survey) ([]Decision, error) {
	reg := t.Registry
	if reg == nil {
		reg = datatypes.NewDefaultRegistry()
	}

	var decisions []Decision
	for _, q := range survey.Questions() {
		if strings.TrimSpace(q.CampDataType) != "" {
			continue
		}

		candidates := reg.Fitting(q)
		if len(candidates) == 1 || (t.Driver == nil && len(candidates) > 0) {
			q.CampDataType = candidates[0].Value
			decisions = append(decisions, Decision{Question: q.Name, Value: q.CampDataType})
			continue
		}
		if t.Driver == nil {
			continue
		}

		options := candidates
		message := fmt.Sprintf("%s fits %d camp data types", t.title(q), len(candidates))
		if len(candidates) == 0 {
			options = reg.All()
			message = fmt.Sprintf("%s has no camp data type", t.title(q))
		}
		if len(options) == 0 {
			continue
		}

		labels := make([]string, 0, len(options)+1)
		for _, option := range options {
			labels = append(labels, fmt.Sprintf("%s (%s)", option.Text(t.Locale), option.Value))
		}
		labels = append(labels, NoneOption)

		defaultIndex := 0
		if len(candidates) == 0 {
			defaultIndex = len(labels) - 1
		}
		index, err := t.Driver.Select(ctx, prompt.SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return decisions, fmt.Errorf("tagging: %s: %w", q.Name, err)
		}

		decision := Decision{Question: q.Name, Prompted: true}
		if index >= 0 && index < len(options) {
			q.CampDataType = options[index].Value
			decision.Value = q.CampDataType
		}
		decisions = append(decisions, decision)
	}
	return decisions, nil
}

func (t Tagger) title(q *model.Element) string {
	if title := q.Title.Resolve(t.Locale); title != "" {
		return fmt.Sprintf("%q (%s)", title, q.Name)
	}
	return fmt.Sprintf("%q", q.Name)
}

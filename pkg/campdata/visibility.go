package campdata

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-campform/pkg/expression"
	"github.com/goliatone/go-campform/pkg/model"
)

// reachableQuestions lists the questions in document order whose page and
// enclosing panels are visible. The questions' own visibleIf is left to the
// caller so rules are only evaluated for answered questions. A nil rule
// treats everything as visible.
func reachableQuestions(survey *model.Survey, rule expression.Rule, ctx expression.Context) ([]*model.Element, error) {
	if survey == nil {
		return nil, nil
	}
	var out []*model.Element
	for i := range survey.Pages {
		page := &survey.Pages[i]
		visible, err := isVisible(rule, page.VisibleIf, "page "+page.Name, ctx)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}
		if out, err = collectQuestions(out, page.Elements, rule, ctx); err != nil {
			return nil, err
		}
	}
	return collectQuestions(out, survey.Elements, rule, ctx)
}

func collectQuestions(out []*model.Element, elements []model.Element, rule expression.Rule, ctx expression.Context) ([]*model.Element, error) {
	for i := range elements {
		el := &elements[i]
		if !el.IsContainer() {
			out = append(out, el)
			continue
		}
		visible, err := isVisible(rule, el.VisibleIf, el.Name, ctx)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}
		if out, err = collectQuestions(out, el.Elements, rule, ctx); err != nil {
			return nil, err
		}
		if out, err = collectQuestions(out, el.TemplateElements, rule, ctx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func isVisible(rule expression.Rule, visibleIf, subject string, ctx expression.Context) (bool, error) {
	if rule == nil || strings.TrimSpace(visibleIf) == "" {
		return true, nil
	}
	visible, err := rule.Eval(visibleIf, ctx)
	if err != nil {
		return false, fmt.Errorf("campdata: visibleIf for %q: %w", subject, err)
	}
	return visible, nil
}

package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-campform/pkg/datatypes"
	"github.com/goliatone/go-campform/pkg/expression"
	"github.com/goliatone/go-campform/pkg/model"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes for a survey definition.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Options configures validation behaviour.
type Options struct {
	Types     *datatypes.Registry
	Evaluator *expression.Evaluator
}

// ValidateSurvey checks a survey for problems the camp layer cares about:
// unnamed or duplicated questions, campDataType values the registry does not
// know, and page or element visibleIf rules that do not compile.
func ValidateSurvey(survey *model.Survey, opts Options) Result {
	if opts.Types == nil {
		opts.Types = datatypes.NewDefaultRegistry()
	}
	if opts.Evaluator == nil {
		opts.Evaluator = expression.New()
	}

	v := &validator{opts: opts, seen: make(map[string]string)}
	if survey != nil {
		for i, page := range survey.Pages {
			prefix := fmt.Sprintf("pages[%d]", i)
			v.rule(prefix, strings.TrimSpace(page.Name), page.VisibleIf)
			v.elements(prefix+".elements", page.Elements)
		}
		v.elements("elements", survey.Elements)
	}
	return Result{Valid: len(v.issues) == 0, Issues: v.issues}
}

type validator struct {
	opts   Options
	seen   map[string]string
	issues []Issue
}

func (v *validator) elements(prefix string, elements []model.Element) {
	for i := range elements {
		el := &elements[i]
		path := fmt.Sprintf("%s[%d]", prefix, i)
		v.element(path, el)
		v.elements(path+".elements", el.Elements)
		v.elements(path+".templateElements", el.TemplateElements)
	}
}

func (v *validator) element(path string, el *model.Element) {
	name := strings.TrimSpace(el.Name)
	if name == "" {
		v.add(path, "", "element has no name")
	} else if first, dup := v.seen[name]; dup {
		v.add(path, name, fmt.Sprintf("duplicate name, first used at %s", first))
	} else {
		v.seen[name] = path
	}

	if value := strings.TrimSpace(el.CampDataType); value != "" {
		if el.IsContainer() {
			v.add(path, name, "containers cannot carry a camp data type")
		} else if _, ok := v.opts.Types.Lookup(value); !ok {
			v.add(path, name, fmt.Sprintf("unknown camp data type %q", value))
		}
	}

	v.rule(path, name, el.VisibleIf)
}

func (v *validator) rule(path, name, visibleIf string) {
	if rule := strings.TrimSpace(visibleIf); rule != "" {
		if err := v.opts.Evaluator.Compile(rule); err != nil {
			v.add(path+".visibleIf", name, strings.TrimPrefix(err.Error(), "expression: "))
		}
	}
}

func (v *validator) add(path, field, message string) {
	v.issues = append(v.issues, Issue{Path: path, Field: field, Message: message})
}

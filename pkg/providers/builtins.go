package providers

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-campform/pkg/functions"
	"github.com/goliatone/go-campform/pkg/model"
)

// Built-in provider names.
const (
	NameDate    = "date"
	NameAddress = "address"
	NameHTML    = "html"
	NameNumber  = "number"
	NameList    = "list"
	NameText    = "text"
)

// Address answer keys understood by the address provider.
var addressKeys = []string{"street", "number", "zip", "city", "country"}

// DefaultAddressTemplate renders the non-empty address lines joined by commas.
const DefaultAddressTemplate = `{% autoescape off %}{{ lines|join:", " }}{% endautoescape %}`

// Option configures the built-in providers.
type Option func(*config)

type config struct {
	addressTemplate string
}

// WithAddressTemplate overrides the pongo2 template used to render addresses.
// The template receives street, number, zip, city, country and lines.
func WithAddressTemplate(tpl string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(tpl) != "" {
			cfg.addressTemplate = tpl
		}
	}
}

// Builtins returns the built-in providers in registration order: date,
// address, html, number, list, text.
func Builtins(opts ...Option) []DataProvider {
	cfg := &config{addressTemplate: DefaultAddressTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return []DataProvider{
		Definition{
			ID:    NameDate,
			Label: "Date",
			FitFunc: func(data any) bool {
				switch data.(type) {
				case time.Time, *time.Time, string:
					_, ok := functions.ParseDate(data)
					return ok
				}
				return false
			},
			Generator: func(data any) (any, error) {
				parsed, _ := functions.ParseDate(data)
				return functions.FormatHTMLDate(parsed), nil
			},
		},
		newAddressProvider(cfg.addressTemplate),
		Definition{
			ID:    NameHTML,
			Label: "HTML",
			FitFunc: func(data any) bool {
				text, ok := data.(string)
				return ok && strings.Contains(text, "<") && strings.Contains(text, ">")
			},
			Generator: func(data any) (any, error) {
				cleaned := markupPolicy().Sanitize(data.(string))
				return strings.TrimSpace(html.UnescapeString(cleaned)), nil
			},
		},
		Definition{
			ID:    NameNumber,
			Label: "Number",
			FitFunc: func(data any) bool {
				_, ok := number(data)
				return ok
			},
			Generator: func(data any) (any, error) {
				n, _ := number(data)
				return n, nil
			},
		},
		Definition{
			ID:    NameList,
			Label: "List",
			FitFunc: func(data any) bool {
				_, ok := data.([]any)
				return ok
			},
			Generator: func(data any) (any, error) {
				items := data.([]any)
				parts := make([]string, 0, len(items))
				for _, item := range items {
					if item == nil {
						continue
					}
					parts = append(parts, fmt.Sprint(item))
				}
				return strings.Join(parts, ", "), nil
			},
		},
		Definition{
			ID:    NameText,
			Label: "Text",
			FitFunc: func(data any) bool {
				_, ok := data.(string)
				return ok
			},
			Generator: func(data any) (any, error) {
				return strings.TrimSpace(data.(string)), nil
			},
		},
	}
}

type addressProvider struct {
	source string
	once   sync.Once
	tpl    *pongo2.Template
	err    error
}

func newAddressProvider(source string) *addressProvider {
	return &addressProvider{source: source}
}

func (p *addressProvider) Name() string  { return NameAddress }
func (p *addressProvider) Title() string { return "Address" }

func (p *addressProvider) IsFit(data any) bool {
	fields, ok := objectFields(data)
	if !ok {
		return false
	}
	for _, key := range addressKeys {
		if _, exists := fields[key]; exists {
			return true
		}
	}
	return false
}

func (p *addressProvider) Generate(data any) (any, error) {
	p.once.Do(func() {
		p.tpl, p.err = pongo2.FromString(p.source)
	})
	if p.err != nil {
		return nil, fmt.Errorf("parse address template: %w", p.err)
	}

	fields, _ := objectFields(data)
	ctx := pongo2.Context{}
	for _, key := range addressKeys {
		ctx[key] = stringField(fields, key)
	}
	ctx["lines"] = addressLines(ctx)

	out, err := p.tpl.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("render address: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func addressLines(ctx pongo2.Context) []string {
	join := func(a, b string) string {
		return strings.TrimSpace(a + " " + b)
	}
	var lines []string
	for _, line := range []string{
		join(ctx["street"].(string), ctx["number"].(string)),
		join(ctx["zip"].(string), ctx["city"].(string)),
		ctx["country"].(string),
	} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func objectFields(data any) (map[string]any, bool) {
	switch v := data.(type) {
	case map[string]any:
		return v, v != nil
	case *model.OrderedObject:
		if v == nil {
			return nil, false
		}
		return v.Map(), true
	case model.OrderedObject:
		return v.Map(), true
	}
	return nil, false
}

func stringField(fields map[string]any, key string) string {
	value, ok := fields[key]
	if !ok || value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func number(data any) (float64, bool) {
	switch v := data.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

var (
	markupPolicyOnce sync.Once
	markupPolicyInst *bluemonday.Policy
)

func markupPolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicyInst = bluemonday.StrictPolicy()
	})
	return markupPolicyInst
}

package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocaleKey is the SurveyJS key for the locale-neutral text of a
// localizable string.
const DefaultLocaleKey = "default"

// FallbackLocale is tried after the caller's locale and the default key.
const FallbackLocale = "en"

// Label maps locale codes to display strings.
type Label map[string]string

// NewLabel builds a label from alternating locale/text pairs. A trailing
// locale without text is ignored.
func NewLabel(pairs ...string) Label {
	out := make(Label, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		locale := strings.TrimSpace(pairs[i])
		if locale == "" {
			continue
		}
		out[locale] = pairs[i+1]
	}
	return out
}

// Resolve picks the text for locale. Lookup order: the exact locale, its base
// language (de-CH -> de), the SurveyJS default key, English, then the first
// locale in lexical order.
func (l Label) Resolve(locale string) string {
	if len(l) == 0 {
		return ""
	}
	locale = strings.TrimSpace(locale)
	if locale != "" {
		if text, ok := l[locale]; ok {
			return text
		}
		if base := BaseLanguage(locale); base != "" && base != locale {
			if text, ok := l[base]; ok {
				return text
			}
		}
	}
	if text, ok := l[DefaultLocaleKey]; ok {
		return text
	}
	if text, ok := l[FallbackLocale]; ok {
		return text
	}
	return l[l.Locales()[0]]
}

// Locales returns the label's locale codes in lexical order.
func (l Label) Locales() []string {
	out := make([]string, 0, len(l))
	for locale := range l {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// UnmarshalJSON accepts either a plain string (stored under the default key)
// or an object of locale to text.
func (l *Label) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("model: decode label: %w", err)
		}
		*l = Label{DefaultLocaleKey: text}
		return nil
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("model: decode label: %w", err)
	}
	*l = Label(values)
	return nil
}

// MarshalJSON writes a label holding only the default key as a plain string,
// the form SurveyJS uses for non-localized text.
func (l Label) MarshalJSON() ([]byte, error) {
	if text, ok := l[DefaultLocaleKey]; ok && len(l) == 1 {
		return json.Marshal(text)
	}
	return json.Marshal(map[string]string(l))
}

// BaseLanguage returns the ISO 639 base of a BCP 47 locale, or "" when the
// locale does not parse.
func BaseLanguage(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

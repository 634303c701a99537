package campdatatypes

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-campform/pkg/model"
)

// negotiateLocale picks the response locale for r.
func negotiateLocale(r *http.Request, opts Options) string {
	if requested := strings.TrimSpace(r.URL.Query().Get(opts.LocaleParam)); requested != "" {
		return requested
	}

	header := r.Header.Get("Accept-Language")
	if strings.TrimSpace(header) == "" {
		return opts.DefaultLocale
	}
	accepted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(accepted) == 0 {
		return opts.DefaultLocale
	}

	supported := supportedLocales(opts)
	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, locale := range supported {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, locale)
	}
	if len(tags) == 0 {
		return opts.DefaultLocale
	}

	_, index, confidence := language.NewMatcher(tags).Match(accepted...)
	if confidence == language.No || index < 0 || index >= len(names) {
		return opts.DefaultLocale
	}
	return names[index]
}

// supportedLocales lists the default locale first so the matcher falls back
// to it.
func supportedLocales(opts Options) []string {
	out := []string{opts.DefaultLocale}
	for _, locale := range opts.Registry.Locales() {
		if locale == model.DefaultLocaleKey || locale == opts.DefaultLocale {
			continue
		}
		out = append(out, locale)
	}
	return out
}

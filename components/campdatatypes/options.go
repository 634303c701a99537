package campdatatypes

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-campform/pkg/datatypes"
)

const (
	defaultRoutePath     = "/api/camp-data-types"
	defaultHealthPath    = "/healthz"
	defaultLocaleParam   = "locale"
	defaultPropertyParam = "property"
	defaultLocale        = "en"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath     string
	HealthPath    string
	LocaleParam   string
	PropertyParam string
	DefaultLocale string
	Guard         GuardFunc

	Registry *datatypes.Registry
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     defaultRoutePath,
		HealthPath:    defaultHealthPath,
		LocaleParam:   defaultLocaleParam,
		PropertyParam: defaultPropertyParam,
		DefaultLocale: defaultLocale,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.RoutePath) == "" {
		opts.RoutePath = defaultRoutePath
	}
	if strings.TrimSpace(opts.HealthPath) == "" {
		opts.HealthPath = defaultHealthPath
	}
	if strings.TrimSpace(opts.LocaleParam) == "" {
		opts.LocaleParam = defaultLocaleParam
	}
	if strings.TrimSpace(opts.PropertyParam) == "" {
		opts.PropertyParam = defaultPropertyParam
	}
	if strings.TrimSpace(opts.DefaultLocale) == "" {
		opts.DefaultLocale = defaultLocale
	}
	if opts.Registry == nil {
		opts.Registry = datatypes.NewDefaultRegistry()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithHealthPath moves the health route, relative to the base path.
func WithHealthPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HealthPath = path
	}
}

func WithLocaleParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LocaleParam = name
	}
}

func WithPropertyParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PropertyParam = name
	}
}

func WithDefaultLocale(locale string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLocale = locale
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithRegistry serves reg instead of a fresh default registry.
func WithRegistry(reg *datatypes.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = reg
	}
}

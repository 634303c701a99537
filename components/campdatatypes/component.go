package campdatatypes

import "net/http"

// Component serves one camp data type registry: the typed dropdown listing
// and a health check that fails once the registry is empty.
type Component struct {
	opts Options
}

// New builds a component over the default options plus overrides. Without
// WithRegistry it serves a fresh built-in registry.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return NewOptions()
	}
	return c.opts
}

// Handler returns the types listing handler.
func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.Options())
}

// HealthHandler returns the health check handler.
func (c *Component) HealthHandler() http.Handler {
	return HealthHandler(c.Options())
}

// Routes lists the component routes under basePath without mounting them.
func (c *Component) Routes(basePath string) []Route {
	return routesFor(basePath, c.Options())
}

// RegisterRoutes mounts the component routes under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]Route, error) {
	return register(mux, c.Routes(basePath))
}

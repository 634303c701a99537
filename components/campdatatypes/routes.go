package campdatatypes

import (
	"fmt"
	"net/http"
	"strings"
)

// Route names.
const (
	RouteTypes  = "types"
	RouteHealth = "health"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Route is one mounted endpoint of the component.
type Route struct {
	Name    string
	Pattern string
	Handler http.Handler
}

// MountPath returns the full path of the types route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return joinPath(basePath, opts.RoutePath)
}

// Routes lists the types and health routes under basePath.
func Routes(basePath string, fns ...OptionFn) []Route {
	return routesFor(basePath, NewOptions(fns...))
}

// RegisterRoutes mounts every component route under basePath on mux and
// returns them in registration order.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]Route, error) {
	return register(mux, routesFor(basePath, NewOptions(fns...)))
}

func routesFor(basePath string, opts Options) []Route {
	return []Route{
		{Name: RouteTypes, Pattern: joinPath(basePath, opts.RoutePath), Handler: HandlerWithOptions(opts)},
		{Name: RouteHealth, Pattern: joinPath(basePath, opts.HealthPath), Handler: HealthHandler(opts)},
	}
}

func register(mux Mux, routes []Route) ([]Route, error) {
	if mux == nil {
		return nil, fmt.Errorf("campdatatypes: missing mux")
	}
	seen := make(map[string]string, len(routes))
	for _, route := range routes {
		if other, dup := seen[route.Pattern]; dup {
			return nil, fmt.Errorf("campdatatypes: %s and %s routes share %q", other, route.Name, route.Pattern)
		}
		seen[route.Pattern] = route.Name
	}
	for _, route := range routes {
		mux.Handle(route.Pattern, route.Handler)
	}
	return routes, nil
}

// HealthHandler answers 204 while the registry lists at least one camp data
// type and 503 once it is empty.
func HealthHandler(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if len(opts.Registry.All()) == 0 {
			http.Error(w, "no camp data types registered", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func joinPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}

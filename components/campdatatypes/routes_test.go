package campdatatypes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-campform/pkg/datatypes"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/camp"); got != "/camp/api/camp-data-types" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("camp"); got != "/camp/api/camp-data-types" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/", WithRoutePath("types")); got != "/types" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func routePatterns(routes []Route) map[string]string {
	out := make(map[string]string, len(routes))
	for _, r := range routes {
		out[r.Name] = r.Pattern
	}
	return out
}

func TestRoutes_ListsTypesAndHealth(t *testing.T) {
	got := routePatterns(Routes("/camp/", WithHealthPath("ready")))
	want := map[string]string{
		RouteTypes:  "/camp/api/camp-data-types",
		RouteHealth: "/camp/ready",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestComponent_RegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	routes, err := New().RegisterRoutes(mux, "/camp/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	patterns := routePatterns(routes)
	if patterns[RouteTypes] != "/camp/api/camp-data-types" {
		t.Fatalf("unexpected registered pattern: %q", patterns[RouteTypes])
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, patterns[RouteTypes]+"?locale=de", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/camp/healthz", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected health status 204, got %d", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	cases := map[string]struct {
		registry *datatypes.Registry
		method   string
		want     int
	}{
		"populated":  {registry: datatypes.NewDefaultRegistry(), method: http.MethodGet, want: http.StatusNoContent},
		"head":       {registry: datatypes.NewDefaultRegistry(), method: http.MethodHead, want: http.StatusNoContent},
		"empty":      {registry: datatypes.NewRegistry(), method: http.MethodGet, want: http.StatusServiceUnavailable},
		"wrong verb": {registry: datatypes.NewDefaultRegistry(), method: http.MethodPost, want: http.StatusMethodNotAllowed},
	}
	for name, tc := range cases {
		h := New(WithRegistry(tc.registry)).HealthHandler()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, "/healthz", nil))
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", name, tc.want, rec.Code)
		}
	}
}

func TestRegisterRoutes_RejectsSharedPattern(t *testing.T) {
	mux := http.NewServeMux()
	if _, err := RegisterRoutes(mux, "/", WithRoutePath("/x"), WithHealthPath("x")); err == nil {
		t.Fatalf("expected shared pattern error")
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected missing mux error")
	}
}

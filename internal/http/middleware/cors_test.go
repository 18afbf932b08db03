package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/cricket-sim-service/internal/testutil"
)

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	var called bool
	handler := CORS(defaultOrigins, okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if !called {
		t.Fatalf("expected next handler to run")
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials allowed, got %q", got)
	}
}

func TestCORSIgnoresUnlistedOrigin(t *testing.T) {
	var called bool
	handler := CORS(defaultOrigins, okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
	if got := rr.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("expected Vary: Origin, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	var called bool
	handler := CORS(defaultOrigins, okHandler(&called))

	req := httptest.NewRequest(http.MethodOptions, "/simulations/1/histogram", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusNoContent)
	if called {
		t.Fatalf("preflight should not reach the next handler")
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != corsAllowMethods {
		t.Fatalf("unexpected allow-methods %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != corsAllowHeaders {
		t.Fatalf("unexpected allow-headers %q", got)
	}
}

func TestCORSWildcard(t *testing.T) {
	var called bool
	handler := CORS([]string{"*"}, okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rr := testutil.ServeRequest(handler, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("wildcard must not allow credentials, got %q", got)
	}
}

func TestCORSPassesThroughWithoutOrigin(t *testing.T) {
	var called bool
	handler := CORS(defaultOrigins, okHandler(&called))

	rr := testutil.Serve(handler, http.MethodOptions, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !called {
		t.Fatalf("expected request without Origin to pass through")
	}
}

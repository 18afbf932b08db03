package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/cricket-sim-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Unknown paths get a JSON 404.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/{$}", handler.Root)
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/simulations/{id}", handler.Simulations)
	mux.HandleFunc("/simulations/{id}/histogram", handler.Histogram)
	mux.HandleFunc("/", handler.NotFound)
	return mux
}

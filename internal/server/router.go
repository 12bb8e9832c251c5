// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/techhub/techhub/internal/server/dto"
	"github.com/techhub/techhub/internal/server/handlers"
	"github.com/techhub/techhub/internal/server/ratelimit"
	"github.com/techhub/techhub/internal/storage"
	"github.com/techhub/techhub/internal/storage/catalog"
)

// Config is the server configuration.
type Config struct {
	storage.ServerConfig
	Version string
}

// NewRouter creates and configures the HTTP router. limits may be nil to
// disable rate limiting.
func NewRouter(frameworks *catalog.FrameworkService, cfg *Config, limits *ratelimit.Config) http.Handler {
	mux := &http.ServeMux{}
	fh := handlers.NewFrameworkHandler(frameworks)
	hh := handlers.NewHealthHandler(cfg.Version)
	sh := handlers.NewSchemaHandler()

	// Frameworks
	mux.Handle("POST /frameworks", Wrap(fh.CreateFramework, cfg))
	mux.Handle("GET /frameworks", Wrap(fh.ListFrameworks, cfg))
	mux.Handle("GET /frameworks/{id}", Wrap(fh.GetFramework, cfg))
	mux.Handle("PUT /frameworks/{id}", Wrap(fh.UpdateFramework, cfg))
	mux.Handle("DELETE /frameworks/{id}", Wrap(fh.DeleteFramework, cfg))
	mux.Handle("/frameworks", methodNotAllowed("GET, HEAD, POST"))
	mux.Handle("/frameworks/{id}", methodNotAllowed("GET, HEAD, PUT, DELETE"))

	// Service
	mux.Handle("GET /health", Wrap(hh.Health, cfg))
	mux.Handle("GET /schema", Wrap(sh.Schema, cfg))
	mux.Handle("GET /{$}", Wrap(hh.Root, cfg))
	mux.Handle("/health", methodNotAllowed("GET, HEAD"))
	mux.Handle("/schema", methodNotAllowed("GET, HEAD"))
	mux.Handle("/{$}", methodNotAllowed("GET, HEAD"))

	mux.Handle("/", http.HandlerFunc(notFound))

	var h http.Handler = mux
	h = rateLimit(limits)(h)
	h = recoverPanic(h)
	h = accessLog(h)
	h = withRequestMetadata(cfg.TrustProxyHeaders)(h)
	return h
}

// methodNotAllowed answers any verb not registered for a known route.
func methodNotAllowed(allow string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeErrorResponse(w, r, dto.MethodNotAllowed(r.Method))
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, r, dto.NewAPIError(http.StatusNotFound, dto.ErrorCodeNotFound, "No route for "+r.Method+" "+r.URL.Path))
}

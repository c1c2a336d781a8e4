package routes

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gururaser/real-estate-game/internal/api/handlers"
	"github.com/gururaser/real-estate-game/internal/api/middleware"
	"github.com/gururaser/real-estate-game/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	gameHandler *handlers.GameHandler

	propertyIndexURL  string
	semanticSearchURL string

	metrics *observability.Metrics
}

// NewRouter creates a new router. The collaborator base URLs feed the
// reverse proxies that let the browser reach the index and the search
// service through this API's origin.
func NewRouter(
	gameHandler *handlers.GameHandler,
	propertyIndexURL string,
	semanticSearchURL string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		gameHandler:       gameHandler,
		propertyIndexURL:  propertyIndexURL,
		semanticSearchURL: semanticSearchURL,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Game endpoints
	r.mux.HandleFunc("POST /api/game", r.gameHandler.NewGame)
	r.mux.HandleFunc("GET /api/game/{id}", r.gameHandler.GetGame)
	r.mux.HandleFunc("POST /api/game/{id}/target", r.gameHandler.NewTarget)
	r.mux.HandleFunc("POST /api/game/{id}/search", r.gameHandler.Search)
	r.mux.HandleFunc("GET /api/game/{id}/results", r.gameHandler.Results)
	r.mux.HandleFunc("POST /api/game/{id}/guess", r.gameHandler.Guess)

	// Collaborator pass-throughs for the browser client
	if proxy := newPrefixProxy("/api/qdrant", r.propertyIndexURL); proxy != nil {
		r.mux.Handle("/api/qdrant/", proxy)
	}
	if proxy := newPrefixProxy("/api/superlinked", r.semanticSearchURL); proxy != nil {
		r.mux.Handle("/api/superlinked/", proxy)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set on every response
	handler = middleware.CORSMiddleware(handler)

	return handler
}

// newPrefixProxy reverse-proxies requests under prefix to the target base
// URL, stripping the prefix. A target that does not parse disables the
// route rather than failing startup.
func newPrefixProxy(prefix, target string) http.Handler {
	base, err := url.Parse(target)
	if err != nil || base.Host == "" {
		return nil
	}

	proxy := &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			trimmed := strings.TrimPrefix(req.URL.Path, prefix)
			if trimmed == "" {
				trimmed = "/"
			}
			req.URL.Scheme = base.Scheme
			req.URL.Host = base.Host
			req.URL.Path = singleJoin(base.Path, trimmed)
			req.Host = base.Host
		},
	}
	return proxy
}

func singleJoin(a, b string) string {
	a = strings.TrimSuffix(a, "/")
	if !strings.HasPrefix(b, "/") {
		b = "/" + b
	}
	return a + b
}

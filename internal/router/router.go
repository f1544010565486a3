package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/textileio/go-nftlookup/internal/lookup"
	"github.com/textileio/go-nftlookup/internal/router/controllers"
	"github.com/textileio/go-nftlookup/internal/router/middlewares"
	"github.com/textileio/go-nftlookup/pkg/nft"
)

// Config holds the settings of the HTTP surface.
type Config struct {
	Defaults        lookup.Query
	RenderTimeout   time.Duration
	MaxRPI          uint64
	RateLimInterval time.Duration
}

// ConfiguredRouter returns a fully configured Router that can be used as an http handler.
func ConfiguredRouter(reader nft.Reader, cfg Config) (*Router, error) {
	ctrl := controllers.NewController(reader, cfg.Defaults, cfg.RenderTimeout)

	compress, err := middlewares.Compress()
	if err != nil {
		return nil, fmt.Errorf("creating compress middleware: %s", err)
	}

	// General router configuration.
	router := NewRouter()
	router.Use(middlewares.CORS, middlewares.TraceID, compress)

	rateLim, err := middlewares.RateLimitController(middlewares.RateLimiterConfig{
		MaxRPI:   cfg.MaxRPI,
		Interval: cfg.RateLimInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("creating rate limit controller middleware: %s", err)
	}

	router.Get("/", ctrl.Page, middlewares.WithLogging, middlewares.OtelHTTP("Page"), rateLim)
	router.Get("/api/v1/lookup", ctrl.Lookup, middlewares.WithLogging, middlewares.OtelHTTP("Lookup"), rateLim)
	router.Get("/version", ctrl.Version, middlewares.WithLogging, middlewares.OtelHTTP("Version"), rateLim)

	// Health endpoint configuration.
	router.Get("/healthz", healthHandler)
	router.Get("/health", healthHandler)

	return router, nil
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Router provides a nice api around mux.Router.
type Router struct {
	r *mux.Router
}

// NewRouter is a Mux HTTP router constructor.
func NewRouter() *Router {
	r := mux.NewRouter()
	r.PathPrefix("/").Methods(http.MethodOptions) // accept OPTIONS on all routes and do nothing
	return &Router{r: r}
}

// Get creates a subroute on the specified URI that only accepts GET. You can provide specific middlewares.
func (r *Router) Get(uri string, f func(http.ResponseWriter, *http.Request), mid ...mux.MiddlewareFunc) {
	sub := r.r.Path(uri).Subrouter()
	sub.HandleFunc("", f).Methods(http.MethodGet)
	sub.Use(mid...)
}

// Use adds middlewares to all routes. Should be used when a middleware should be execute all all routes (e.g. CORS).
func (r *Router) Use(mid ...mux.MiddlewareFunc) {
	r.r.Use(mid...)
}

// Handler returns the configured router http handler.
func (r *Router) Handler() http.Handler {
	return r.r
}

package router

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deciflow/deciflow/internal/config"
	"github.com/deciflow/deciflow/internal/middleware"
)

// New builds the host server router: /api is reverse-proxied to the backend
// so the wasm client stays same-origin, everything else is the go-app
// handler serving the bundle.
func New(cfg config.Config, logger zerolog.Logger) (*mux.Router, error) {
	backend, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}

	proxy := httputil.NewSingleHostReverseProxy(backend)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("backend unreachable")
		w.WriteHeader(http.StatusBadGateway)
	}

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// The client issues every backend call against /api/...; the proxy keeps
	// auth semantics untouched and simply forwards the bearer token.
	r.PathPrefix("/api/").Handler(http.StripPrefix("/api", proxy))

	r.PathPrefix("/").Handler(&app.Handler{
		Name:        "DeciFlow",
		ShortName:   "DeciFlow",
		Title:       "DeciFlow - Purchase Request Management",
		Description: "Purchase request and approval workflow management system",
		Styles:      []string{"/web/app.css"},
	})

	return r, nil
}

package api

import (
	"net/http"
	"venue-finder-service/internal/api/handlers"
	"venue-finder-service/internal/platform/metrics"
)

type RouterConfig struct {
	Finder         handlers.PlaceFinder
	Shares         handlers.ShareLinks
	StaticDir      string
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	placesHandler := &handlers.PlacesHandler{Finder: cfg.Finder}
	shareHandler := &handlers.ShareHandler{Links: cfg.Shares}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/post-location-inputs", placesHandler.Find)
	mux.HandleFunc("/generate-share-link", shareHandler.Create)
	mux.HandleFunc("/get-share", shareHandler.Get)
	mux.Handle("/", &handlers.Static{Dir: cfg.StaticDir})

	var h http.Handler = mux
	h = corsMiddleware(cfg.AllowedOrigins)(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

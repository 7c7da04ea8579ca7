package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/signature-homes-backend/config"
	"github.com/rpupo63/signature-homes-backend/content"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/metrics"
	"github.com/rpupo63/signature-homes-backend/services"
	"github.com/rpupo63/signature-homes-backend/session"
)

// Dependencies are the components the routes serve. Submissions may be nil
// when no database is configured.
type Dependencies struct {
	Content     *content.File
	Catalog     *gallery.Catalog
	Sessions    session.Store
	Contact     ContactSubmitter
	Submissions SubmissionLister
	Images      services.ImageResolver
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	if deps.Content == nil || deps.Catalog == nil || deps.Sessions == nil || deps.Contact == nil {
		return Server{}, fmt.Errorf("server requires content, catalog, session store and contact service")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime), withMetrics(metrics.Handler()))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(c, "READ_TIMEOUT_SECONDS", time.Second, 180),  // Timeout for reading the entire request
		WriteTimeout: config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", time.Second, 180), // Timeout for writing the response
		IdleTimeout:  config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", time.Second, 180),  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config         map[string]string
	startupTime    time.Time
	metricsHandler http.Handler
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withMetrics(h http.Handler) func(*router) {
	return func(r *router) {
		r.metricsHandler = h
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}
	if deps.Images == nil {
		deps.Images = services.NewStaticResolver("")
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MetricsMiddleware)

	// Initialize all handlers
	handlers := initializeHandlers(deps, router.startupTime)

	// Apply CORS middleware
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	setupFrontendRoutes(chiRouter, handlers, router.metricsHandler)

	// Admin routes exist only with a token and a database to read from
	adminToken := config.GetString(router.config, "ADMIN_TOKEN", "")
	if adminToken != "" && deps.Submissions != nil {
		setupAdminRoutes(chiRouter, handlers, newAuthMiddleware(adminToken))
	}

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

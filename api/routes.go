package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up the public site routes
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, metricsHandler http.Handler) {
	r.Get("/healthz", handlers.siteHandler.healthCheck())
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Site content
		r.Get("/site", handlers.siteHandler.getSite())
		r.Get("/services", handlers.siteHandler.getServices())
		r.Get("/about", handlers.siteHandler.getAbout())

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())

		// Gallery Handler endpoints
		r.Get("/gallery", handlers.galleryHandler.getGallery())
		r.Get("/gallery/images/{imageID}/{direction}", handlers.galleryHandler.navigateImage())

		// Lightbox sessions
		r.Post("/gallery/sessions", handlers.sessionHandler.createSession())
		r.Route("/gallery/sessions/{sessionID}", func(r chi.Router) {
			r.Use(handlers.sessionHandler.loadSession)

			r.Get("/", handlers.sessionHandler.getSession())
			r.Delete("/", handlers.sessionHandler.deleteSession())
			r.Put("/project", handlers.sessionHandler.selectProject())
			r.Post("/open", handlers.sessionHandler.openImage())
			r.Post("/navigate/{direction}", handlers.sessionHandler.navigate())
			r.Post("/close", handlers.sessionHandler.closeLightbox())
		})

		// Contact form
		r.Post("/contact", handlers.contactHandler.submitContact())
	})
}

// setupAdminRoutes sets up the token protected routes
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/contact/submissions", handlers.contactHandler.getSubmissions())
	})
}

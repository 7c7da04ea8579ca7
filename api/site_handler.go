package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/signature-homes-backend/content"
	"github.com/rpupo63/signature-homes-backend/gallery"
)

type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	content     *content.File
	catalog     *gallery.Catalog
	startupTime time.Time
}

func newSiteHandler(file *content.File, catalog *gallery.Catalog, startupTime time.Time) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		content:     file,
		catalog:     catalog,
		startupTime: startupTime,
	}
}

// healthCheck reports uptime and catalog size
// @Router /healthz [get]
func (h siteHandler) healthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:          "ok",
			StartupTime:     h.startupTime,
			Uptime:          time.Since(h.startupTime).Round(time.Second).String(),
			Projects:        len(h.catalog.Projects()),
			Images:          len(h.catalog.Images()),
			ImagesByProject: h.catalog.Counts(),
		})
	}
}

// getSite returns the company information shown in the header and footer
// @Router /site [get]
func (h siteHandler) getSite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.content.Site)
	}
}

// getServices returns the services page content in authored order
// @Router /services [get]
func (h siteHandler) getServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.content.Services)
	}
}

// getAbout returns the about page sections in authored order
// @Router /about [get]
func (h siteHandler) getAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.content.About)
	}
}

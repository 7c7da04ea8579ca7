package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/models"
	"github.com/rpupo63/signature-homes-backend/services"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *gallery.Catalog
	images    services.ImageResolver
}

func newProjectHandler(catalog *gallery.Catalog, images services.ImageResolver) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalog,
		images:    images,
	}
}

// getAllProjects lists projects for the gallery's project selector, optionally
// narrowed to one category
// @Summary Get all projects
// @Description Featured projects first, then by name
// @Tags Projects
// @Produce json
// @Param category query string false "all, custom-homes, barndominiums or renovations"
// @Success 200 {object} ProjectCollection "Sorted projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown category"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category == "" {
			category = models.CategoryAll
		}
		if category != models.CategoryAll && !models.IsValidProjectCategory(category) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", "unknown project category"))
			return
		}

		projects := h.catalog.ProjectsInCategory(category)

		h.responder.WriteJSON(w, ProjectCollection{
			Category:   category,
			Categories: models.ProjectCategories,
			Projects:   projects,
			Total:      len(projects),
		})
	}
}

// getProject retrieves a specific project with its images
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} ProjectDetail "Project details with images"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, ok := h.catalog.ProjectFor(projectID)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		images, err := resolveImages(r.Context(), h.images, h.catalog.FilteredImages(&projectID))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectDetail{
			Project: project,
			Images:  images,
		})
	}
}

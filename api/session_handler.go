package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/metrics"
	"github.com/rpupo63/signature-homes-backend/services"
	"github.com/rpupo63/signature-homes-backend/session"
)

// sessionHandler drives the lightbox for one visitor. State lives in the
// session store and is rebuilt into a gallery.Viewer on each request.
type sessionHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *gallery.Catalog
	store     session.Store
	images    services.ImageResolver
}

func newSessionHandler(catalog *gallery.Catalog, store session.Store, images services.ImageResolver) sessionHandler {
	logger := log.With().Str("handlerName", "sessionHandler").Logger()

	return sessionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalog,
		store:     store,
		images:    images,
	}
}

// loadSession fetches {sessionID} from the store into the request context
func (h sessionHandler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		state, err := h.store.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, h.storeError(id, err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithSession(r.Context(), id, state)))
	})
}

func (h sessionHandler) storeError(id string, err error) error {
	if errors.Is(err, session.ErrSessionNotFound) {
		return errs.NewSessionNotFoundError(id)
	}
	return errs.NewServiceUnavailableError("session store", err)
}

// viewer rebuilds the visitor's viewer from the loaded session
func (h sessionHandler) viewer(r *http.Request) (string, *gallery.Viewer, error) {
	id, state, err := ctxGetSession(r.Context())
	if err != nil {
		return "", nil, err
	}
	return id, gallery.RestoreViewer(h.catalog, state), nil
}

// save stores the viewer state and writes the session response
func (h sessionHandler) save(w http.ResponseWriter, r *http.Request, id string, v *gallery.Viewer) {
	if err := h.store.Save(r.Context(), id, v.State()); err != nil {
		h.responder.WriteError(w, h.storeError(id, err))
		return
	}
	h.writeSession(w, r, http.StatusOK, id, v)
}

func (h sessionHandler) writeSession(w http.ResponseWriter, r *http.Request, status int, id string, v *gallery.Viewer) {
	state := v.State()

	images, err := resolveImages(r.Context(), h.images, v.View())
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	response := SessionResponse{
		ID:      id,
		State:   state,
		Project: projectFor(h.catalog, state.SelectedProject),
		Images:  images,
		Total:   len(images),
	}
	if current, ok := v.Current(); ok {
		resolved, err := resolveImage(r.Context(), h.images, current)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		response.Current = &resolved
	}

	h.responder.WriteJSONStatus(w, status, response)
}

// createSession starts a viewing session, optionally filtered to a project
// @Summary Create gallery session
// @Tags Gallery Sessions
// @Accept json
// @Produce json
// @Param body body selectProjectRequest false "Initial project filter"
// @Success 201 {object} SessionResponse "New session"
// @Router /gallery/sessions [post]
func (h sessionHandler) createSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectProjectRequest
		if err := decodeJSONBody(w, r, &req, true); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		v := gallery.NewViewer(h.catalog)
		v.SelectProject(blankAsAll(req.Project))

		id, err := h.store.Create(r.Context(), v.State())
		if err != nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("session store", err))
			return
		}
		h.logger.Debug().Str("sessionId", id).Msg("Created gallery session")

		h.writeSession(w, r, http.StatusCreated, id, v)
	}
}

// getSession returns the current view and open image
// @Summary Get gallery session
// @Tags Gallery Sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} SessionResponse "Session state"
// @Failure 404 {object} ErrorResponse "Not Found - Session missing or expired"
// @Router /gallery/sessions/{sessionID} [get]
func (h sessionHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, v, err := h.viewer(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.writeSession(w, r, http.StatusOK, id, v)
	}
}

// selectProject changes the project filter. A different filter closes the lightbox.
// @Summary Select project
// @Tags Gallery Sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body selectProjectRequest true "Project ID, null for all"
// @Success 200 {object} SessionResponse "Updated session"
// @Router /gallery/sessions/{sessionID}/project [put]
func (h sessionHandler) selectProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, v, err := h.viewer(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req selectProjectRequest
		if err := decodeJSONBody(w, r, &req, true); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		v.SelectProject(blankAsAll(req.Project))
		h.save(w, r, id, v)
	}
}

// openImage opens the lightbox on an image of the current view
// @Summary Open image
// @Tags Gallery Sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body openImageRequest true "Image to open"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 404 {object} ErrorResponse "Not Found - Image not in the current view"
// @Router /gallery/sessions/{sessionID}/open [post]
func (h sessionHandler) openImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, v, err := h.viewer(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req openImageRequest
		if err := decodeJSONBody(w, r, &req, false); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.ImageID == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("imageId"))
			return
		}

		if _, err := v.Open(*req.ImageID); err != nil {
			if errors.Is(err, gallery.ErrImageNotInView) {
				err = errs.NewImageNotInViewError(*req.ImageID)
			}
			h.responder.WriteError(w, err)
			return
		}
		h.save(w, r, id, v)
	}
}

// navigate moves the open lightbox to the next or previous image, wrapping
// @Summary Navigate lightbox
// @Tags Gallery Sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param direction path string true "next or previous"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 409 {object} ErrorResponse "Conflict - Lightbox is closed"
// @Router /gallery/sessions/{sessionID}/navigate/{direction} [post]
func (h sessionHandler) navigate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, v, err := h.viewer(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		dir, err := gallery.ParseDirection(chi.URLParam(r, "direction"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := v.Step(dir); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		metrics.IncrementGalleryNavigation(string(dir), "session")

		h.save(w, r, id, v)
	}
}

// closeLightbox closes the lightbox and keeps the project filter
// @Router /gallery/sessions/{sessionID}/close [post]
func (h sessionHandler) closeLightbox() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, v, err := h.viewer(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		v.Close()
		h.save(w, r, id, v)
	}
}

// deleteSession ends the viewing session
// @Router /gallery/sessions/{sessionID} [delete]
func (h sessionHandler) deleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _, err := ctxGetSession(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, h.storeError(id, err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func blankAsAll(project *string) *string {
	if project == nil || strings.TrimSpace(*project) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*project)
	return &trimmed
}

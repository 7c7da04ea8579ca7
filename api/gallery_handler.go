package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/metrics"
	"github.com/rpupo63/signature-homes-backend/models"
	"github.com/rpupo63/signature-homes-backend/services"
)

type galleryHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *gallery.Catalog
	images    services.ImageResolver
}

func newGalleryHandler(catalog *gallery.Catalog, images services.ImageResolver) galleryHandler {
	logger := log.With().Str("handlerName", "galleryHandler").Logger()

	return galleryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalog,
		images:    images,
	}
}

// getGallery returns the filtered view for ?project=, or every image
// @Summary Get gallery view
// @Tags Gallery
// @Produce json
// @Param project query string false "Project ID"
// @Success 200 {object} GalleryResponse "Filtered images in catalog order"
// @Router /gallery [get]
func (h galleryHandler) getGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		selected := projectQuery(r)

		view, err := resolveImages(r.Context(), h.images, h.catalog.FilteredImages(selected))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, GalleryResponse{
			SelectedProject: selected,
			Project:         projectFor(h.catalog, selected),
			Images:          view,
			Total:           len(view),
		})
	}
}

// navigateImage steps from an image within the filtered view without a session
// @Summary Navigate gallery
// @Tags Gallery
// @Produce json
// @Param imageID path int true "Current image ID"
// @Param direction path string true "next or previous"
// @Param project query string false "Project ID"
// @Success 200 {object} NavigationResponse "Adjacent image, wrapping at the ends"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid direction or image ID"
// @Failure 404 {object} ErrorResponse "Not Found - Image not in the view"
// @Router /gallery/images/{imageID}/{direction} [get]
func (h galleryHandler) navigateImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID, err := strconv.Atoi(chi.URLParam(r, "imageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("imageID", "must be an integer"))
			return
		}

		dir, err := gallery.ParseDirection(chi.URLParam(r, "direction"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		view := h.catalog.FilteredImages(projectQuery(r))
		current, ok := h.catalog.Image(imageID)
		if !ok {
			h.responder.WriteError(w, errs.NewImageNotInViewError(imageID))
			return
		}

		next, err := gallery.Navigate(current, dir, view)
		if err != nil {
			if errors.Is(err, gallery.ErrImageNotInView) || errors.Is(err, gallery.ErrEmptyView) {
				err = errs.NewImageNotInViewError(imageID)
			}
			h.responder.WriteError(w, err)
			return
		}
		metrics.IncrementGalleryNavigation(string(dir), "stateless")

		resolved, err := resolveImage(r.Context(), h.images, next)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, NavigationResponse{
			Image: resolved,
			Index: indexInView(view, next.ID),
			Total: len(view),
		})
	}
}

// projectFor returns nil for "all" and for projects without metadata
func projectFor(catalog *gallery.Catalog, selected *string) *models.Project {
	if selected == nil {
		return nil
	}
	project, ok := catalog.ProjectFor(*selected)
	if !ok {
		return nil
	}
	return &project
}

func indexInView(view []models.GalleryImage, imageID int) int {
	for i, img := range view {
		if img.ID == imageID {
			return i
		}
	}
	return -1
}

func resolveImage(ctx context.Context, resolver services.ImageResolver, img models.GalleryImage) (models.GalleryImage, error) {
	if resolver == nil {
		return img, nil
	}
	url, err := resolver.Resolve(ctx, img.ImageURL)
	if err != nil {
		return models.GalleryImage{}, errs.NewServiceUnavailableError("image storage", err)
	}
	img.ImageURL = url
	return img, nil
}

// resolveImages rewrites image locations into loadable URLs. It always
// returns a non-nil slice so empty views encode as [].
func resolveImages(ctx context.Context, resolver services.ImageResolver, images []models.GalleryImage) ([]models.GalleryImage, error) {
	out := make([]models.GalleryImage, 0, len(images))
	for _, img := range images {
		resolved, err := resolveImage(ctx, resolver, img)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

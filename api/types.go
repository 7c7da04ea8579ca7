package api

import (
	"time"

	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	siteHandler    siteHandler
	projectHandler projectHandler
	galleryHandler galleryHandler
	sessionHandler sessionHandler
	contactHandler contactHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"email"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

type HealthResponse struct {
	Status          string         `json:"status"`
	StartupTime     time.Time      `json:"startupTime"`
	Uptime          string         `json:"uptime"`
	Projects        int            `json:"projects"`
	Images          int            `json:"images"`
	ImagesByProject map[string]int `json:"imagesByProject"`
}

type ProjectCollection struct {
	Category   string                   `json:"category"`
	Categories []models.ProjectCategory `json:"categories"`
	Projects   []models.Project         `json:"projects"`
	Total      int                      `json:"total"`
}

// ProjectDetail is a project with its images in catalog order
type ProjectDetail struct {
	Project models.Project        `json:"project"`
	Images  []models.GalleryImage `json:"images"`
}

// GalleryResponse is the filtered view for a project selection. Project is
// null when showing all images or when the project has no metadata.
type GalleryResponse struct {
	SelectedProject *string               `json:"selectedProject"`
	Project         *models.Project       `json:"project"`
	Images          []models.GalleryImage `json:"images"`
	Total           int                   `json:"total"`
}

type NavigationResponse struct {
	Image models.GalleryImage `json:"image"`
	Index int                 `json:"index"`
	Total int                 `json:"total"`
}

type SessionResponse struct {
	ID      string                `json:"id"`
	State   gallery.State         `json:"state"`
	Project *models.Project       `json:"project"`
	Images  []models.GalleryImage `json:"images"`
	Total   int                   `json:"total"`
	Current *models.GalleryImage  `json:"current"`
}

type selectProjectRequest struct {
	Project *string `json:"project"`
}

type openImageRequest struct {
	ImageID *int `json:"imageId"`
}

type contactRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	ProjectType string  `json:"projectType"`
	Message     string  `json:"message"`
}

type ContactResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SubmissionCollection struct {
	Submissions []models.ContactSubmission `json:"submissions"`
	Total       int                        `json:"total"`
}

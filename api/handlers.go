package api

import "time"

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		siteHandler:    newSiteHandler(deps.Content, deps.Catalog, startupTime),
		projectHandler: newProjectHandler(deps.Catalog, deps.Images),
		galleryHandler: newGalleryHandler(deps.Catalog, deps.Images),
		sessionHandler: newSessionHandler(deps.Catalog, deps.Sessions, deps.Images),
		contactHandler: newContactHandler(deps.Contact, deps.Submissions),
	}
}

// Package gallery filters the photo catalog by project and navigates the
// lightbox over the filtered view.
package gallery

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/rpupo63/signature-homes-backend/models"
)

var (
	ErrDuplicateProject = errors.New("duplicate project id")
	ErrDuplicateImage   = errors.New("duplicate image id")
	ErrUnknownProject   = errors.New("image references unknown project")
	ErrUnknownCategory  = errors.New("unknown project category")
)

// Catalog is the immutable set of projects and images in authoring order.
// It is built once at startup and shared by reference.
type Catalog struct {
	projects     []models.Project
	images       []models.GalleryImage
	projectIndex map[string]int
	imageIndex   map[int]int
}

// NewCatalog copies the given records and checks that ids are unique and that
// every image points at an existing project.
func NewCatalog(projects []models.Project, images []models.GalleryImage) (*Catalog, error) {
	c := &Catalog{
		projects:     slices.Clone(projects),
		images:       slices.Clone(images),
		projectIndex: make(map[string]int, len(projects)),
		imageIndex:   make(map[int]int, len(images)),
	}

	for i, p := range c.projects {
		if _, exists := c.projectIndex[p.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProject, p.ID)
		}
		if p.Category != "" && !models.IsValidProjectCategory(p.Category) {
			return nil, fmt.Errorf("%w: project %q -> %q", ErrUnknownCategory, p.ID, p.Category)
		}
		c.projectIndex[p.ID] = i
	}

	for i, img := range c.images {
		if _, exists := c.imageIndex[img.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateImage, img.ID)
		}
		if _, ok := c.projectIndex[img.ProjectID]; !ok {
			return nil, fmt.Errorf("%w: image %d -> %q", ErrUnknownProject, img.ID, img.ProjectID)
		}
		c.imageIndex[img.ID] = i
	}

	return c, nil
}

// Projects returns every project in catalog order
func (c *Catalog) Projects() []models.Project {
	return slices.Clone(c.projects)
}

// Images returns every image in catalog order
func (c *Catalog) Images() []models.GalleryImage {
	return slices.Clone(c.images)
}

// FilteredImages returns the images of the selected project in catalog order,
// or the whole catalog when selected is nil. An unknown project yields an
// empty, non-nil slice.
func (c *Catalog) FilteredImages(selected *string) []models.GalleryImage {
	if selected == nil {
		return c.Images()
	}

	filtered := make([]models.GalleryImage, 0)
	for _, img := range c.images {
		if img.ProjectID == *selected {
			filtered = append(filtered, img)
		}
	}
	return filtered
}

// ProjectFor looks a project up by id. A missing project is not an error.
func (c *Catalog) ProjectFor(projectID string) (models.Project, bool) {
	i, ok := c.projectIndex[projectID]
	if !ok {
		return models.Project{}, false
	}
	return c.projects[i], true
}

// Image looks an image up by id
func (c *Catalog) Image(imageID int) (models.GalleryImage, bool) {
	i, ok := c.imageIndex[imageID]
	if !ok {
		return models.GalleryImage{}, false
	}
	return c.images[i], true
}

// SortedProjects orders the project selector: featured projects first, then
// by name. Equal keys keep catalog order.
func (c *Catalog) SortedProjects() []models.Project {
	sorted := c.Projects()
	SortProjects(sorted)
	return sorted
}

// ProjectsInCategory is SortedProjects narrowed to one category. An empty
// category or "all" returns every project.
func (c *Catalog) ProjectsInCategory(category string) []models.Project {
	sorted := c.SortedProjects()
	if category == "" || category == models.CategoryAll {
		return sorted
	}

	filtered := make([]models.Project, 0, len(sorted))
	for _, p := range sorted {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortProjects sorts in place with the selector ordering
func SortProjects(projects []models.Project) {
	slices.SortStableFunc(projects, func(a, b models.Project) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Counts reports how many images each project has
func (c *Catalog) Counts() map[string]int {
	counts := make(map[string]int, len(c.projects))
	for _, p := range c.projects {
		counts[p.ID] = 0
	}
	for _, img := range c.images {
		counts[img.ProjectID]++
	}
	return counts
}

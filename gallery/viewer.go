package gallery

import (
	"errors"
	"fmt"

	"github.com/rpupo63/signature-homes-backend/models"
)

var ErrLightboxClosed = errors.New("lightbox is closed")

// State is the selection of one viewing session. A nil SelectedProject shows
// every image and a nil OpenImageID means the lightbox is closed.
type State struct {
	SelectedProject *string `json:"selectedProject"`
	OpenImageID     *int    `json:"openImageId"`
}

// Viewer applies user intents to a State over a Catalog.
// It is not safe for concurrent use.
type Viewer struct {
	catalog *Catalog
	state   State
}

func NewViewer(catalog *Catalog) *Viewer {
	return &Viewer{catalog: catalog}
}

// RestoreViewer rebuilds a viewer from a stored state. An open image that is
// no longer part of the view is dropped so the lightbox guard still holds.
func RestoreViewer(catalog *Catalog, state State) *Viewer {
	v := &Viewer{catalog: catalog, state: cloneState(state)}
	if v.state.OpenImageID != nil && indexOf(v.View(), *v.state.OpenImageID) < 0 {
		v.state.OpenImageID = nil
	}
	return v
}

func (v *Viewer) State() State {
	return cloneState(v.state)
}

// View is the current filtered view
func (v *Viewer) View() []models.GalleryImage {
	return v.catalog.FilteredImages(v.state.SelectedProject)
}

// SelectedProject returns the selected project's metadata. ok is false when
// showing all projects or when the selection has no authored metadata.
func (v *Viewer) SelectedProject() (models.Project, bool) {
	if v.state.SelectedProject == nil {
		return models.Project{}, false
	}
	return v.catalog.ProjectFor(*v.state.SelectedProject)
}

// SelectProject changes the filter. A different filter closes the lightbox;
// reselecting the current filter leaves it untouched.
func (v *Viewer) SelectProject(projectID *string) {
	if sameSelection(v.state.SelectedProject, projectID) {
		return
	}
	if projectID == nil {
		v.state.SelectedProject = nil
	} else {
		id := *projectID
		v.state.SelectedProject = &id
	}
	v.state.OpenImageID = nil
}

// Open shows imageID in the lightbox. The image must be in the current view.
func (v *Viewer) Open(imageID int) (models.GalleryImage, error) {
	view := v.View()
	i := indexOf(view, imageID)
	if i < 0 {
		return models.GalleryImage{}, fmt.Errorf("%w: %d", ErrImageNotInView, imageID)
	}
	id := imageID
	v.state.OpenImageID = &id
	return view[i], nil
}

// Current returns the image shown in the lightbox, if open
func (v *Viewer) Current() (models.GalleryImage, bool) {
	if v.state.OpenImageID == nil {
		return models.GalleryImage{}, false
	}
	return v.catalog.Image(*v.state.OpenImageID)
}

// Step moves the lightbox one image in dir, wrapping around the view
func (v *Viewer) Step(dir Direction) (models.GalleryImage, error) {
	current, ok := v.Current()
	if !ok {
		return models.GalleryImage{}, ErrLightboxClosed
	}
	next, err := Navigate(current, dir, v.View())
	if err != nil {
		return models.GalleryImage{}, err
	}
	id := next.ID
	v.state.OpenImageID = &id
	return next, nil
}

func (v *Viewer) Close() {
	v.state.OpenImageID = nil
}

func sameSelection(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneState(s State) State {
	var out State
	if s.SelectedProject != nil {
		p := *s.SelectedProject
		out.SelectedProject = &p
	}
	if s.OpenImageID != nil {
		id := *s.OpenImageID
		out.OpenImageID = &id
	}
	return out
}

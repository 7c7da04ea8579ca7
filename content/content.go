// Package content loads the authored site content: company info, services and
// the gallery catalog.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrInvalidContent = errors.New("invalid content")

// File mirrors catalog.yaml. Order of projects and images is catalog order.
type File struct {
	Site     models.SiteInfo       `yaml:"site"`
	Services []models.Service      `yaml:"services"`
	About    models.AboutPage      `yaml:"about"`
	Projects []models.Project      `yaml:"projects"`
	Images   []models.GalleryImage `yaml:"images"`
}

// Load reads the content file at path, or the embedded default when path is empty
func Load(path string) (*File, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	f.assignPositions()
	return &f, nil
}

// Catalog builds the gallery catalog from the authored projects and images
func (f *File) Catalog() (*gallery.Catalog, error) {
	return gallery.NewCatalog(f.Projects, f.Images)
}

func (f *File) validate() error {
	for i, p := range f.Projects {
		if p.ID == "" {
			return fmt.Errorf("%w: project #%d has no id", ErrInvalidContent, i+1)
		}
		if p.Name == "" {
			return fmt.Errorf("%w: project %q has no name", ErrInvalidContent, p.ID)
		}
	}
	for i, img := range f.Images {
		if img.ID == 0 {
			return fmt.Errorf("%w: image #%d has no id", ErrInvalidContent, i+1)
		}
		if img.ImageURL == "" {
			return fmt.Errorf("%w: image %d has no imageUrl", ErrInvalidContent, img.ID)
		}
	}
	// reference and uniqueness checks
	if _, err := f.Catalog(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	return nil
}

func (f *File) assignPositions() {
	for i := range f.Projects {
		f.Projects[i].Position = i
	}
	for i := range f.Images {
		f.Images[i].Position = i
	}
}

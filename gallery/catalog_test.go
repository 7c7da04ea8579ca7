package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/signature-homes-backend/models"
)

func strPtr(s string) *string { return &s }

// twoProjectCatalog has project-1 with 5 images (ids 1-5) and project-2 with
// 3 images (ids 20-22), interleaved to check catalog order is kept.
func twoProjectCatalog(t *testing.T) *Catalog {
	t.Helper()

	projects := []models.Project{
		{ID: "project-1", Name: "Luxury Barndo'", Featured: true, CompletionDate: "February 2025"},
		{ID: "project-2", Name: "Sharp Residence", CompletionDate: "May 2025"},
	}
	images := []models.GalleryImage{
		{ID: 1, ProjectID: "project-1", ImageURL: "/images/gallery/bathroom-main.png"},
		{ID: 2, ProjectID: "project-1", ImageURL: "/images/gallery/bathroom-tub.png"},
		{ID: 20, ProjectID: "project-2", ImageURL: "/images/gallery/sharp/1.jpg", Featured: true},
		{ID: 3, ProjectID: "project-1", ImageURL: "/images/gallery/bathroom-shower.png"},
		{ID: 21, ProjectID: "project-2", ImageURL: "/images/gallery/sharp/2.jpg"},
		{ID: 4, ProjectID: "project-1", ImageURL: "/images/gallery/kitchen.png"},
		{ID: 5, ProjectID: "project-1", ImageURL: "/images/gallery/living-room.png"},
		{ID: 22, ProjectID: "project-2", ImageURL: "/images/gallery/sharp/3.jpg"},
	}

	c, err := NewCatalog(projects, images)
	require.NoError(t, err)
	return c
}

func ids(images []models.GalleryImage) []int {
	out := make([]int, 0, len(images))
	for _, img := range images {
		out = append(out, img.ID)
	}
	return out
}

func TestNewCatalog_Validation(t *testing.T) {
	t.Run("dangling project reference", func(t *testing.T) {
		_, err := NewCatalog(
			[]models.Project{{ID: "project-1", Name: "A"}},
			[]models.GalleryImage{{ID: 1, ProjectID: "project-9"}},
		)
		assert.ErrorIs(t, err, ErrUnknownProject)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := NewCatalog(
			[]models.Project{{ID: "project-1", Name: "A", Category: "mansions"}},
			nil,
		)
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("duplicate project id", func(t *testing.T) {
		_, err := NewCatalog(
			[]models.Project{{ID: "project-1", Name: "A"}, {ID: "project-1", Name: "B"}},
			nil,
		)
		assert.ErrorIs(t, err, ErrDuplicateProject)
	})

	t.Run("duplicate image id", func(t *testing.T) {
		_, err := NewCatalog(
			[]models.Project{{ID: "project-1", Name: "A"}},
			[]models.GalleryImage{{ID: 1, ProjectID: "project-1"}, {ID: 1, ProjectID: "project-1"}},
		)
		assert.ErrorIs(t, err, ErrDuplicateImage)
	})

	t.Run("empty catalog is valid", func(t *testing.T) {
		c, err := NewCatalog(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, c.FilteredImages(nil))
	})
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	projects := []models.Project{{ID: "project-1", Name: "A"}}
	images := []models.GalleryImage{{ID: 1, ProjectID: "project-1", ImageURL: "/a.png"}}

	c, err := NewCatalog(projects, images)
	require.NoError(t, err)

	images[0].ImageURL = "/mutated.png"
	projects[0].Name = "mutated"

	assert.Equal(t, "/a.png", c.Images()[0].ImageURL)
	p, ok := c.ProjectFor("project-1")
	require.True(t, ok)
	assert.Equal(t, "A", p.Name)
}

func TestFilteredImages(t *testing.T) {
	c := twoProjectCatalog(t)

	t.Run("nil selection returns full catalog in order", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 20, 3, 21, 4, 5, 22}, ids(c.FilteredImages(nil)))
	})

	t.Run("selected project keeps catalog order", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(c.FilteredImages(strPtr("project-1"))))
		assert.Equal(t, []int{20, 21, 22}, ids(c.FilteredImages(strPtr("project-2"))))
	})

	t.Run("every image of a project and nothing else", func(t *testing.T) {
		for _, p := range c.Projects() {
			view := c.FilteredImages(strPtr(p.ID))
			for _, img := range view {
				assert.Equal(t, p.ID, img.ProjectID)
			}
			assert.Len(t, view, c.Counts()[p.ID])
		}
	})

	t.Run("unknown project yields empty view", func(t *testing.T) {
		view := c.FilteredImages(strPtr("project-99"))
		assert.NotNil(t, view)
		assert.Empty(t, view)
	})

	t.Run("idempotent", func(t *testing.T) {
		sel := strPtr("project-2")
		assert.Equal(t, c.FilteredImages(sel), c.FilteredImages(sel))
		assert.Equal(t, c.FilteredImages(nil), c.FilteredImages(nil))
	})

	t.Run("result is detached from the catalog", func(t *testing.T) {
		view := c.FilteredImages(nil)
		view[0].ImageURL = "/changed.png"
		assert.Equal(t, "/images/gallery/bathroom-main.png", c.FilteredImages(nil)[0].ImageURL)
	})
}

func TestProjectFor(t *testing.T) {
	c := twoProjectCatalog(t)

	p, ok := c.ProjectFor("project-2")
	require.True(t, ok)
	assert.Equal(t, "Sharp Residence", p.Name)
	assert.Nil(t, p.Description)

	_, ok = c.ProjectFor("project-99")
	assert.False(t, ok)
}

func TestSortedProjects(t *testing.T) {
	t.Run("featured first then by name", func(t *testing.T) {
		c, err := NewCatalog([]models.Project{
			{ID: "b", Name: "B"},
			{ID: "a", Name: "A", Featured: true},
			{ID: "c", Name: "C"},
		}, nil)
		require.NoError(t, err)

		var names []string
		for _, p := range c.SortedProjects() {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"A", "B", "C"}, names)
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		c, err := NewCatalog([]models.Project{
			{ID: "second", Name: "Same"},
			{ID: "z", Name: "Zed", Featured: true},
			{ID: "third", Name: "Same"},
			{ID: "first-featured", Name: "Same", Featured: true},
		}, nil)
		require.NoError(t, err)

		var got []string
		for _, p := range c.SortedProjects() {
			got = append(got, p.ID)
		}
		assert.Equal(t, []string{"first-featured", "z", "second", "third"}, got)
	})

	t.Run("byte-wise comparison", func(t *testing.T) {
		c, err := NewCatalog([]models.Project{
			{ID: "lower", Name: "alpha"},
			{ID: "upper", Name: "Beta"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "upper", c.SortedProjects()[0].ID)
	})

	t.Run("does not reorder catalog", func(t *testing.T) {
		c := twoProjectCatalog(t)
		_ = c.SortedProjects()
		assert.Equal(t, "project-1", c.Projects()[0].ID)
	})
}

func TestCounts(t *testing.T) {
	c := twoProjectCatalog(t)
	assert.Equal(t, map[string]int{"project-1": 5, "project-2": 3}, c.Counts())
}

func TestProjectsInCategory(t *testing.T) {
	projects := []models.Project{
		{ID: "p-reno", Name: "Kitchen Remodel", Category: models.CategoryRenovations},
		{ID: "p-barn-b", Name: "Bluff Barndo", Category: models.CategoryBarndominium},
		{ID: "p-home", Name: "Sharp Residence", Category: models.CategoryCustomHomes},
		{ID: "p-barn-a", Name: "Luxury Barndo'", Category: models.CategoryBarndominium, Featured: true},
		{ID: "p-none", Name: "Uncategorized"},
	}
	c, err := NewCatalog(projects, nil)
	require.NoError(t, err)

	projectIDs := func(ps []models.Project) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	all := []string{"p-barn-a", "p-barn-b", "p-reno", "p-home", "p-none"}
	assert.Equal(t, all, projectIDs(c.ProjectsInCategory("")))
	assert.Equal(t, all, projectIDs(c.ProjectsInCategory(models.CategoryAll)))

	// same ordering as the selector within a category
	assert.Equal(t, []string{"p-barn-a", "p-barn-b"}, projectIDs(c.ProjectsInCategory(models.CategoryBarndominium)))
	assert.Equal(t, []string{"p-home"}, projectIDs(c.ProjectsInCategory(models.CategoryCustomHomes)))

	none := c.ProjectsInCategory("mansions")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/signature-homes-backend/models"
)

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"next":     Next,
		"NEXT":     Next,
		"previous": Previous,
		"prev":     Previous,
		" prev ":   Previous,
	}
	for in, want := range cases {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestNavigate_Cyclic(t *testing.T) {
	c := twoProjectCatalog(t)

	for _, sel := range []*string{nil, strPtr("project-1"), strPtr("project-2")} {
		view := c.FilteredImages(sel)
		n := len(view)
		for i, img := range view {
			next, err := Navigate(img, Next, view)
			require.NoError(t, err)
			assert.Equal(t, view[(i+1)%n].ID, next.ID)

			prev, err := Navigate(img, Previous, view)
			require.NoError(t, err)
			assert.Equal(t, view[(i-1+n)%n].ID, prev.ID)
		}
	}
}

func TestNavigate_SingleImage(t *testing.T) {
	view := []models.GalleryImage{{ID: 7, ProjectID: "p"}}

	next, err := Navigate(view[0], Next, view)
	require.NoError(t, err)
	assert.Equal(t, 7, next.ID)

	prev, err := Navigate(view[0], Previous, view)
	require.NoError(t, err)
	assert.Equal(t, 7, prev.ID)
}

func TestNavigate_Preconditions(t *testing.T) {
	img := models.GalleryImage{ID: 1, ProjectID: "p"}

	_, err := Navigate(img, Next, nil)
	assert.ErrorIs(t, err, ErrEmptyView)

	_, err = Navigate(img, Next, []models.GalleryImage{{ID: 2, ProjectID: "p"}})
	assert.ErrorIs(t, err, ErrImageNotInView)

	_, err = Navigate(img, Direction("up"), []models.GalleryImage{img})
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestNavigate_WrapsAfterLast(t *testing.T) {
	c := twoProjectCatalog(t)
	view := c.FilteredImages(strPtr("project-2"))
	require.Len(t, view, 3)

	// open the second image, step next twice: third, then back to the first
	current := view[1]
	var err error
	current, err = Navigate(current, Next, view)
	require.NoError(t, err)
	assert.Equal(t, 22, current.ID)

	current, err = Navigate(current, Next, view)
	require.NoError(t, err)
	assert.Equal(t, 20, current.ID)
}

package gallery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpupo63/signature-homes-backend/models"
)

type Direction string

const (
	Next     Direction = "next"
	Previous Direction = "previous"
)

var (
	ErrEmptyView        = errors.New("filtered view is empty")
	ErrImageNotInView   = errors.New("image is not in the filtered view")
	ErrInvalidDirection = errors.New("invalid direction")
)

// ParseDirection accepts "next", "previous" and the short form "prev"
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next":
		return Next, nil
	case "previous", "prev":
		return Previous, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Navigate returns the neighbour of current inside view, wrapping at both ends.
// The caller must only navigate from an image that is part of a non-empty view.
func Navigate(current models.GalleryImage, dir Direction, view []models.GalleryImage) (models.GalleryImage, error) {
	n := len(view)
	if n == 0 {
		return models.GalleryImage{}, ErrEmptyView
	}

	i := indexOf(view, current.ID)
	if i < 0 {
		return models.GalleryImage{}, fmt.Errorf("%w: %d", ErrImageNotInView, current.ID)
	}

	switch dir {
	case Next:
		return view[(i+1)%n], nil
	case Previous:
		return view[(i-1+n)%n], nil
	default:
		return models.GalleryImage{}, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
}

func indexOf(view []models.GalleryImage, imageID int) int {
	for i, img := range view {
		if img.ID == imageID {
			return i
		}
	}
	return -1
}

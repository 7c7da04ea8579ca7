package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementContactSubmission(t *testing.T) {
	before := testutil.ToFloat64(ContactSubmissionCount.WithLabelValues("failed"))
	IncrementContactSubmission("failed")
	IncrementContactSubmission("failed")
	assert.Equal(t, before+2, testutil.ToFloat64(ContactSubmissionCount.WithLabelValues("failed")))
}

func TestIncrementGalleryNavigation(t *testing.T) {
	before := testutil.ToFloat64(GalleryNavigationCount.WithLabelValues("next", "session"))
	IncrementGalleryNavigation("next", "session")
	assert.Equal(t, before+1, testutil.ToFloat64(GalleryNavigationCount.WithLabelValues("next", "session")))
}

func TestSetActiveSessions(t *testing.T) {
	SetActiveSessions(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(ActiveSessions))
	SetActiveSessions(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(ActiveSessions))
}

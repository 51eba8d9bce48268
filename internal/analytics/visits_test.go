package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitTracker_NilSafe(t *testing.T) {
	tracker := NewVisitTracker(nil)
	assert.False(t, tracker.Enabled())

	// Все операции без redis являются no-op
	require.NoError(t, tracker.Track(context.Background(), "/requests", "10.0.0.1"))

	days, pages, err := tracker.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, days)
	assert.Nil(t, pages)
}

func TestVisitTracker_NilPointerSafe(t *testing.T) {
	var tracker *VisitTracker
	assert.False(t, tracker.Enabled())
	require.NoError(t, tracker.Track(context.Background(), "/offers", "10.0.0.2"))
}

package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("posting text", "https://example.com/job")

	assert.Equal(t, "https://example.com/job", meta.URL)
	assert.Len(t, meta.Hash, 64)

	ts, err := time.Parse(time.RFC3339, meta.FetchedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestNewMetadata_HashDependsOnContent(t *testing.T) {
	a := NewMetadata("Content 1", "")
	b := NewMetadata("Content 1", "")
	c := NewMetadata("Content 2", "")

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := New().Normalize("<h2>Title</h2><p>Some <strong>bold</strong> text X[1]</p>")
	require.NoError(t, err)
	assert.Contains(t, got, "## Title")
	assert.Contains(t, got, "**bold**")
}

func TestNormalize_Empty(t *testing.T) {
	got, err := New().Normalize("   ")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

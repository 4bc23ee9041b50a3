package htmlmeta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/designpreview/internal/foundation/errors"
)

func TestRead(t *testing.T) {
	doc := `<!doctype html>
<html><head>
  <title>
    Checkout   Flow v2
  </title>
  <meta name="Description" content="Second  iteration">
</head>
<body><title>ignored</title></body></html>`

	meta, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Checkout Flow v2", meta.Title)
	assert.Equal(t, "Second iteration", meta.Description)
}

func TestRead_NoHead(t *testing.T) {
	meta, err := Read(strings.NewReader("<p>fragment</p>"))
	require.NoError(t, err)
	assert.Equal(t, Meta{}, meta)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.html")
	require.NoError(t, os.WriteFile(path, []byte("<title>A</title>"), 0o644))

	meta, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A", meta.Title)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	ref, err := store.Save(context.Background(), strings.NewReader("image-bytes"), "image/png", "report_images")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/report_images/"), "got %q", ref)
	assert.True(t, strings.HasSuffix(ref, ".png"), "got %q", ref)

	onDisk := filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, err := store.Save(context.Background(), strings.NewReader("a"), "image/jpeg", "f")
	require.NoError(t, err)
	second, err := store.Save(context.Background(), strings.NewReader("b"), "image/jpeg", "f")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "png", extensionFor("image/png"))
	assert.Equal(t, "jpeg", extensionFor("image/jpeg"))
	assert.Equal(t, "gif", extensionFor("image/gif"))
	assert.Equal(t, "pdf", extensionFor("application/pdf"))
	assert.Equal(t, "jpg", extensionFor("application/octet-stream"))
	assert.Equal(t, "jpg", extensionFor(""))
}

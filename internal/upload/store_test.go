package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	store, err := NewStore(Config{
		Dir:       t.TempDir(),
		URLPrefix: "/uploads",
		MaxBytes:  maxBytes,
	})
	require.NoError(t, err)
	return store
}

func TestSaveReturnsPublicURLAndKeepsExtension(t *testing.T) {
	store := newTestStore(t, 1024)

	url, err := store.Save(strings.NewReader("fake image bytes"), "logo.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestSaveDropsSuspiciousExtensions(t *testing.T) {
	store := newTestStore(t, 1024)

	url, err := store.Save(strings.NewReader("x"), "../../etc/passwd.sh/../weird.$$$")
	require.NoError(t, err)
	assert.NotContains(t, url, "..")
	assert.NotContains(t, strings.TrimPrefix(url, "/uploads/"), "/")
}

func TestSaveEnforcesSizeCeiling(t *testing.T) {
	store := newTestStore(t, 8)

	_, err := store.Save(strings.NewReader("123456789"), "big.jpg")
	assert.ErrorIs(t, err, ErrTooLarge)

	// nothing left behind
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveAtLimitSucceeds(t *testing.T) {
	store := newTestStore(t, 8)

	url, err := store.Save(strings.NewReader("12345678"), "ok.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestRemoveIgnoresUnknownAndUnsafePaths(t *testing.T) {
	store := newTestStore(t, 1024)

	assert.NoError(t, store.Remove("/uploads/never-existed.png"))
	assert.NoError(t, store.Remove("/uploads/../store.go"))

	url, err := store.Save(strings.NewReader("x"), "a.png")
	require.NoError(t, err)
	require.NoError(t, store.Remove(url))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

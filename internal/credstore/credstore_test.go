package credstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFile(t *testing.T) {
	s := NewFileStore(t.TempDir())
	v, err := s.Get("access_token")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestFileStore_SetGetAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileStore(dir).Set("access_token", "abc"))

	v, err := NewFileStore(dir).Get("access_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestFileStore_Remove(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Remove("a", "missing"))

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, "", a)
	assert.Equal(t, "2", b)
}

func TestFileStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewFileStore(dir)
	require.NoError(t, s.Set("token", "x"))

	fi, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}

func TestFileStore_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{{bad"), 0600))
	_, err := NewFileStore(dir).Get("token")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(map[string]string{"token": "x"})
	v, _ := s.Get("token")
	assert.Equal(t, "x", v)
	require.NoError(t, s.Remove("token"))
	v, _ = s.Get("token")
	assert.Equal(t, "", v)
}

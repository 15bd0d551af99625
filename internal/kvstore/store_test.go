package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("searchHistory")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("searchHistory", `["wi"]`))
	v, ok, err := s.Get("searchHistory")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["wi"]`, v)

	require.NoError(t, s.Set("searchHistory", `[]`))
	v, _, _ = s.Get("searchHistory")
	assert.Equal(t, `[]`, v)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "sub", "history.json"))
	require.NoError(t, err)
	testStore(t, fs)
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("searchHistory", `["ab","wi"]`))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get("searchHistory")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["ab","wi"]`, v)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestOpenFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := OpenFileStore(path)
	require.Error(t, err)
}

func TestOpenFileStoreEmptyPath(t *testing.T) {
	_, err := OpenFileStore("")
	require.Error(t, err)
}

func TestBoltStore(t *testing.T) {
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "sub", "history.db"))
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestBoltStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("searchHistory", `["ab"]`))
	require.NoError(t, s.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get("searchHistory")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["ab"]`, v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, closer, err := Open("bolt", filepath.Join(dir, "h.db"))
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, s)
	require.NoError(t, closer())

	s, closer, err = Open("", filepath.Join(dir, "h.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	require.NoError(t, closer())

	_, _, err = Open("redis", filepath.Join(dir, "h"))
	assert.ErrorContains(t, err, `unknown store backend "redis"`)
}

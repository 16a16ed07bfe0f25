package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "custody-iavl")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, s.LoadLatestVersion())

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("nonce"), []byte{1}))
	require.NoError(t, cache.Write())

	id, err := s.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)
	assert.NotEmpty(t, id.Hash)

	// discarded changes are never applied to the tree
	cache = s.CacheWrap()
	require.NoError(t, cache.Set([]byte("nonce"), []byte{2}))
	cache.Discard()
	_, err = s.Commit()
	require.NoError(t, err)
	s.Close()

	reopened, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.EqualValues(t, 2, latest.Version)
	assert.Equal(t, id.Hash, latest.Hash)

	val, err := reopened.Get([]byte("nonce"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, val)
}

func TestMemCommitStoreDelete(t *testing.T) {
	s := NewMemCommitStore()
	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Write())
	_, err := s.Commit()
	require.NoError(t, err)

	cache = s.CacheWrap()
	require.NoError(t, cache.Delete([]byte("a")))
	require.NoError(t, cache.Write())

	has, err := s.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

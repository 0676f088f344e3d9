package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/apiresponse/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "catalog.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openStore(t)
	_, _, err := store.Load()
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestStore_SaveReplacesCatalog(t *testing.T) {
	store := openStore(t)
	before := time.Now().UTC().Add(-time.Second)

	require.NoError(t, store.Save(map[domain.ApiCode]string{20: "first", 21: "second"}))
	require.NoError(t, store.Save(map[domain.ApiCode]string{22: "third"}))

	codes, savedAt, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, map[domain.ApiCode]string{22: "third"}, codes)
	assert.True(t, savedAt.After(before))
}

func TestStore_SaveEmptyCatalog(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Save(nil))

	codes, _, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestStore_NilSafe(t *testing.T) {
	var store *Store
	assert.Error(t, store.Save(nil))
	_, _, err := store.Load()
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}

package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texsync/internal/logger"
	"texsync/internal/session"
)

func TestStore_Path(t *testing.T) {
	t.Parallel()

	store := session.NewStore("/tmp/cookies.json", logger.NewNoOp())
	assert.Equal(t, "/tmp/cookies.json", store.Path())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	store := session.NewStore(path, logger.NewNoOp())

	cookies := []session.Cookie{
		{
			Name:     "FedAuth",
			Value:    "77u/PD94bWwg",
			Domain:   "contoso.sharepoint.com",
			Path:     "/",
			Expires:  1.7e9,
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
		},
		{
			Name:    "rtFa",
			Value:   "abc123",
			Domain:  ".sharepoint.com",
			Path:    "/",
			Expires: -1,
		},
	}

	require.NoError(t, store.Save(cookies))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cookies, loaded)
}

func TestStore_SaveRestrictsPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	store := session.NewStore(path, logger.NewNoOp())

	require.NoError(t, store.Save([]session.Cookie{{Name: "FedAuth", Value: "x"}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	store := session.NewStore(path, logger.NewNoOp())

	cookies, err := store.Load()
	require.Error(t, err)
	assert.Nil(t, cookies)

	var storeErr *session.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "load", storeErr.Op)
	assert.Equal(t, path, storeErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStore_LoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store := session.NewStore(path, logger.NewNoOp())

	_, err := store.Load()
	require.Error(t, err)

	var storeErr *session.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "load", storeErr.Op)
}

func TestStore_SaveReplacesPreviousContents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	store := session.NewStore(path, logger.NewNoOp())

	require.NoError(t, store.Save([]session.Cookie{
		{Name: "old-a", Value: "1"},
		{Name: "old-b", Value: "2"},
	}))
	require.NoError(t, store.Save([]session.Cookie{
		{Name: "new", Value: "3"},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "new", loaded[0].Name)
}

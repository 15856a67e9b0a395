// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "wpe", "config.yaml"))
}

var testCreds = Credentials{
	APIURL:   "https://api.wpengineapi.com/v1",
	UserID:   "4f1c2b9e-user",
	Password: "  s3cr3t: with #yaml chars  ",
}

func TestSaveGet_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testCreds))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, testCreds, got)
}

func TestSave_OverwritesPreviousRecord(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testCreds))

	updated := Credentials{APIURL: "http://localhost:9000", UserID: "other", Password: "pw"}
	require.NoError(t, store.Save(updated))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestSave_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store := newTestStore(t)
	require.NoError(t, store.Save(testCreds))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSave_RejectsIncompleteRecord(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(Credentials{APIURL: "https://example.com", UserID: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "no file should be written for an incomplete record")
}

func TestGet_Missing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGet_IncompleteFileIsNotAuthenticated(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("api_url: https://example.com\nuser_id: u\n"), 0600))

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	ok, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_MalformedFileIsStorageError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("api_url: [unterminated\n"), 0600))

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrStorage)
	assert.False(t, errors.Is(err, ErrNotAuthenticated))
}

func TestGet_UnreadablePathIsStorageError(t *testing.T) {
	// A directory where the file should be cannot be read as a file.
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.Path(), 0750))

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrStorage)

	_, err = store.Exists()
	assert.ErrorIs(t, err, ErrStorage)
}

// blockedStore returns a Store whose parent directory is a regular file.
func blockedStore(t *testing.T) *Store {
	t.Helper()
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0600))
	return NewStore(filepath.Join(parent, "config.yaml"))
}

func TestSave_UnwritableLocationIsStorageError(t *testing.T) {
	store := blockedStore(t)

	err := store.Save(testCreds)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestInitialize_UnreadableLocationIsStorageError(t *testing.T) {
	store := blockedStore(t)

	called := false
	err := store.Initialize(func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrStorage)
	assert.False(t, called, "login must not run when the location cannot be read")
}

func TestInitialize_LoginSaveFailureIsStorageError(t *testing.T) {
	store := newTestStore(t)
	blocked := blockedStore(t)

	err := store.Initialize(func() error { return blocked.Save(testCreds) })
	assert.ErrorIs(t, err, ErrStorage)
}

func TestReset_Idempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testCreds))

	require.NoError(t, store.Reset())
	require.NoError(t, store.Reset())

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestInitialize_ExistingRecordDoesNotLogin(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testCreds))

	called := false
	err := store.Initialize(func() error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called)
}

func TestInitialize_MissingRecordLogsIn(t *testing.T) {
	store := newTestStore(t)

	calls := 0
	err := store.Initialize(func() error {
		calls++
		return store.Save(testCreds)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Second call finds the record.
	require.NoError(t, store.Initialize(func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}

func TestInitialize_PropagatesLoginError(t *testing.T) {
	store := newTestStore(t)
	loginErr := errors.New("aborted")

	err := store.Initialize(func() error { return loginErr })
	assert.ErrorIs(t, err, loginErr)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	def, err := DefaultConfigPath()
	require.NoError(t, err)

	got, err := ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, def, got)

	t.Setenv(EnvConfigPath, "/tmp/from-env.yaml")
	got, err = ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.yaml", got)

	got, err = ResolveConfigPath("/tmp/from-flag.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-flag.yaml", got)
}

func TestResolvePath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolvePath("~/wpe/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "wpe", "config.yaml"), got)

	got, err = ResolvePath("/abs/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/abs/config.yaml", got)
}

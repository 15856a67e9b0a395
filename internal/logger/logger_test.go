// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_FileAndStderr(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)
	t.Cleanup(func() { Close() })

	var stderr bytes.Buffer
	InitLogger(Options{ToFile: true, Stderr: &stderr})

	Info("Credentials saved.", "user_id", "u1")
	Debug("hidden at info level")
	require.NoError(t, Close())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(stderr.Bytes()), &rec))
	assert.Equal(t, "Credentials saved.", rec["msg"])
	assert.Equal(t, "u1", rec["user_id"])

	data, err := os.ReadFile(filepath.Join(stateDir, "wpe", "wpe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Credentials saved."`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestInitLogger_VerboseEnablesDebug(t *testing.T) {
	var stderr bytes.Buffer
	InitLogger(Options{Stderr: &stderr, Verbose: true})

	Debug("request", "status", 200)
	assert.Contains(t, stderr.String(), `"level":"DEBUG"`)
}

func TestLogFilePath_HomeFallback(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "state", "wpe", "wpe.log"), path)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config persists the WP Engine API credential record used by the
// wpe CLI. The record lives in a single YAML file under the user's config
// directory and is either complete or absent.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the per-user config and state directories.
	AppName = "wpe"

	// EnvConfigPath overrides the default config file location.
	EnvConfigPath = "WPE_CONFIG"

	// DefaultAPIURL is offered at the login prompt.
	DefaultAPIURL = "https://api.wpengineapi.com/v1"
)

var (
	// ErrNotAuthenticated is returned when no complete credential record exists.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrStorage is returned when the record cannot be read or written for
	// reasons other than its absence.
	ErrStorage = errors.New("credential storage error")
)

// Credentials is the persisted API base URL, user id and password tuple.
type Credentials struct {
	// APIURL is the base URL of the WP Engine API, e.g. https://api.wpengineapi.com/v1
	APIURL string `yaml:"api_url"`

	// UserID is the API user id sent as the basic auth username
	UserID string `yaml:"user_id"`

	// Password is the API password sent as the basic auth password
	Password string `yaml:"password"`
}

// Complete reports whether all three fields are set.
func (c Credentials) Complete() bool {
	return c.APIURL != "" && c.UserID != "" && c.Password != ""
}

// Validate returns an error naming the first missing field.
func (c Credentials) Validate() error {
	switch {
	case c.APIURL == "":
		return errors.New("API URL is required")
	case c.UserID == "":
		return errors.New("user ID is required")
	case c.Password == "":
		return errors.New("password is required")
	}
	return nil
}

// Store reads and writes the credential record at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, AppName, "config.yaml"), nil
}

// ResolveConfigPath picks the config file location. An explicit flag value
// wins over the WPE_CONFIG environment variable, which wins over the default.
func ResolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return ResolvePath(flagValue)
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return ResolvePath(env)
	}
	return DefaultConfigPath()
}

// Get returns the stored credential record.
func (s *Store) Get() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, ErrNotAuthenticated
		}
		return Credentials{}, fmt.Errorf("%w: failed to read %s: %v", ErrStorage, s.path, err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%w: failed to parse %s: %v", ErrStorage, s.path, err)
	}
	if !creds.Complete() {
		return Credentials{}, fmt.Errorf("%w: incomplete credential record in %s", ErrNotAuthenticated, s.path)
	}
	return creds, nil
}

// Exists reports whether a complete record is stored. A missing or
// incomplete record is not an error.
func (s *Store) Exists() (bool, error) {
	_, err := s.Get()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotAuthenticated):
		return false, nil
	default:
		return false, err
	}
}

// Initialize calls login when no complete record exists. It is safe to call
// on every start.
func (s *Store) Initialize(login func() error) error {
	ok, err := s.Exists()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return login()
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil { // rwxr-x---
		return fmt.Errorf("%w: failed to create config directory %s: %v", ErrStorage, dir, err)
	}
	return nil
}

// Save replaces the stored record. Incomplete records are rejected.
func (s *Store) Save(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials to YAML: %w", err)
	}

	// New files are created 0600; an existing file keeps its mode.
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", ErrStorage, s.path, err)
	}
	return nil
}

// Reset deletes the stored record. Deleting a missing record is not an error.
func (s *Store) Reset() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to remove %s: %v", ErrStorage, s.path, err)
	}
	return nil
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package auth implements the first-run login, re-login and reset flow for
// the WP Engine API credential record.
package auth

import (
	"errors"
	"fmt"

	"wpe/internal/config"
	"wpe/internal/logger"
)

// Prompter collects answers from the operator.
type Prompter interface {
	// Ask shows label and returns the trimmed answer, or def when the answer is blank.
	Ask(label, def string) (string, error)

	// Secret reads a value without echoing it.
	Secret(label string) (string, error)
}

// Flow drives credential entry against a config.Store.
type Flow struct {
	store  *config.Store
	prompt Prompter
}

// NewFlow returns a Flow that saves to store and asks questions through prompt.
func NewFlow(store *config.Store, prompt Prompter) *Flow {
	return &Flow{store: store, prompt: prompt}
}

// Login asks for the API URL, user id and password and saves them,
// replacing any previous record. The values are not checked against the API.
func (f *Flow) Login() (config.Credentials, error) {
	var creds config.Credentials
	var err error

	creds.APIURL, err = f.prompt.Ask("API URL", config.DefaultAPIURL)
	if err != nil {
		return config.Credentials{}, fmt.Errorf("error reading API URL: %w", err)
	}

	creds.UserID, err = f.prompt.Ask("API User ID", "")
	if err != nil {
		return config.Credentials{}, fmt.Errorf("error reading user ID: %w", err)
	}

	creds.Password, err = f.prompt.Secret("API Password")
	if err != nil {
		return config.Credentials{}, fmt.Errorf("error reading password: %w", err)
	}

	if err := creds.Validate(); err != nil {
		return config.Credentials{}, err
	}
	if err := f.store.Save(creds); err != nil {
		return config.Credentials{}, err
	}

	logger.Info("Credentials saved.", "path", f.store.Path(), "api_url", creds.APIURL, "user_id", creds.UserID)
	return creds, nil
}

// Reset deletes the stored record.
func (f *Flow) Reset() error {
	if err := f.store.Reset(); err != nil {
		return err
	}
	logger.Info("Credentials removed.", "path", f.store.Path())
	return nil
}

// Ensure returns the stored record, running Login first when none exists.
func (f *Flow) Ensure() (config.Credentials, error) {
	err := f.store.Initialize(func() error {
		_, err := f.Login()
		return err
	})
	if err != nil {
		return config.Credentials{}, err
	}
	return f.store.Get()
}

// Status returns the stored record without prompting.
func (f *Flow) Status() (config.Credentials, bool, error) {
	creds, err := f.store.Get()
	if errors.Is(err, config.ErrNotAuthenticated) {
		return config.Credentials{}, false, nil
	}
	if err != nil {
		return config.Credentials{}, false, err
	}
	return creds, true, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrRequest is a network or transport failure.
	ErrRequest = errors.New("request failed")

	// ErrAuth means the API rejected the credentials (401 or 403).
	ErrAuth = errors.New("authentication rejected")

	// ErrDecode means the response body was not valid JSON of the expected shape.
	ErrDecode = errors.New("invalid response")

	// ErrNotFound means the API reported no such resource without a JSON body.
	ErrNotFound = errors.New("not found")
)

// Error describes a failed API call.
type Error struct {
	Kind       error
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

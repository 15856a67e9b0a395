// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package api

import (
	"bytes"
	"encoding/json"
)

// Site is a hosting account entity. Fields other than id and name are kept
// verbatim in Raw.
type Site struct {
	ID   string
	Name string
	Raw  json.RawMessage
}

// UnmarshalJSON accepts any JSON value for id and name; non-strings are kept
// as their JSON text.
func (s *Site) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID   json.RawMessage `json:"id"`
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	s.ID = scalarString(fields.ID)
	s.Name = scalarString(fields.Name)
	s.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the document as received.
func (s Site) MarshalJSON() ([]byte, error) {
	if len(s.Raw) > 0 {
		return s.Raw, nil
	}
	return json.Marshal(map[string]string{"id": s.ID, "name": s.Name})
}

func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var str string
	if json.Unmarshal(raw, &str) == nil {
		return str
	}
	return string(raw)
}

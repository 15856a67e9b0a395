// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"wpe/internal/api"
)

// printSites writes one "name = id" line per site in API order.
func printSites(w io.Writer, sites []api.Site) error {
	for _, s := range sites {
		if _, err := fmt.Fprintf(w, "%s = %s\n", s.Name, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// printSite writes doc indented with two spaces, keeping the field order of the
// response, followed by exactly one newline.
func printSite(w io.Writer, doc json.RawMessage) error {
	var buf bytes.Buffer
	// json.Indent keeps trailing whitespace, so a body ending in "\n" would print a blank line.
	if err := json.Indent(&buf, bytes.TrimSpace(doc), "", "  "); err != nil {
		return fmt.Errorf("%w: %v", api.ErrDecode, err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

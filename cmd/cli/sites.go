// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSitesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "sites",
		Short:   "Fetch all sites from your WP Engine account",
		Example: "  wpe sites",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.authenticatedClient(cmd)
			if err != nil {
				return err
			}

			stop := startSpinner(cmd.ErrOrStderr(), " Fetching sites...")
			sites, err := client.ListSites(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			return printSites(cmd.OutOrStdout(), sites)
		},
	}
}

func newSiteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "site <ID>",
		Short:             "Fetch a site by its ID",
		Example:           "  wpe site 294deacc-d8b8-4fcf-9caf-3cd9d3a1a8c7",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: siteCompletionFunc(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.authenticatedClient(cmd)
			if err != nil {
				return err
			}

			stop := startSpinner(cmd.ErrOrStderr(), " Fetching site...")
			doc, err := client.GetSite(cmd.Context(), args[0])
			stop()
			if err != nil {
				return err
			}
			return printSite(cmd.OutOrStdout(), doc)
		},
	}
}

// startSpinner shows a spinner on w while a request is in flight. It is a
// no-op unless w is a terminal.
func startSpinner(w io.Writer, suffix string) func() {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Color("cyan")
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

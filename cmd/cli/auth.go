// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(a *app) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with the WP Engine API",
		Long: `Manage the credentials used for WP Engine API requests.
Credentials are not checked when entered; a wrong user ID or password shows up
as an authentication error on the next API command.`,
		Args: cobra.ArbitraryArgs,
		RunE: invalidCommand,
	}

	authCmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Log in to the WP Engine API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, store, err := a.authFlow(cmd)
			if err != nil {
				return err
			}
			if _, err := flow.Login(); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			successColor.Fprintf(cmd.OutOrStdout(), "Credentials saved to %s\n", store.Path())
			return nil
		},
	})

	authCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete the stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, _, err := a.authFlow(cmd)
			if err != nil {
				return err
			}
			if err := flow.Reset(); err != nil {
				return err
			}
			successColor.Fprintln(cmd.OutOrStdout(), "Credentials removed.")
			return nil
		},
	})

	authCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the stored API URL and user ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, store, err := a.authFlow(cmd)
			if err != nil {
				return err
			}
			creds, ok, err := flow.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintf(out, "Not logged in. Run %s to authenticate.\n", identifierColor.Sprint("wpe auth login"))
				return nil
			}
			fmt.Fprintf(out, "Config file: %s\n", store.Path())
			fmt.Fprintf(out, "API URL:     %s\n", identifierColor.Sprint(creds.APIURL))
			fmt.Fprintf(out, "User ID:     %s\n", identifierColor.Sprint(creds.UserID))
			fmt.Fprintf(out, "Password:    %s\n", dimColor.Sprint("[set]"))
			return nil
		},
	})

	return authCmd
}

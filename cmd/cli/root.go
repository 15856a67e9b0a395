// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"wpe/internal/api"
	"wpe/internal/auth"
	"wpe/internal/config"
	"wpe/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X wpe/cmd/cli.version=...".
var version = "dev"

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

var errInvalidCommand = errors.New("invalid command")

// app carries the global flags and injectable dependencies shared by all commands.
type app struct {
	configPath string
	verbose    bool
	logToFile  bool
	httpClient *http.Client
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "wpe",
		Short:   "WP Engine CLI",
		Version: version,
		Long: `A command-line client for the WP Engine hosting API.

Credentials (API URL, user ID and password) are requested on first use and
stored in ~/.config/wpe/config.yaml (override with --config or WPE_CONFIG).`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid at this point; runtime errors should not print usage.
			cmd.SilenceUsage = true

			var stderr io.Writer
			if a.verbose {
				stderr = cmd.ErrOrStderr()
			}
			logger.InitLogger(logger.Options{ToFile: a.logToFile, Stderr: stderr, Verbose: a.verbose})
			logger.Debug("Running command", "command", cmd.CommandPath(), "args", args)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Close()
		},
		RunE: invalidCommand,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the credentials file (default ~/.config/wpe/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log requests to stderr")

	rootCmd.AddCommand(newSitesCmd(a))
	rootCmd.AddCommand(newSiteCmd(a))
	rootCmd.AddCommand(newAuthCmd(a))
	return rootCmd
}

// invalidCommand shows help when no subcommand is given and rejects anything else.
func invalidCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return fmt.Errorf("%w: %s", errInvalidCommand, args[0])
}

// store opens the credential store selected by --config, WPE_CONFIG or the default path.
func (a *app) store() (*config.Store, error) {
	path, err := config.ResolveConfigPath(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrStorage, err)
	}
	return config.NewStore(path), nil
}

func (a *app) authFlow(cmd *cobra.Command) (*auth.Flow, *config.Store, error) {
	store, err := a.store()
	if err != nil {
		return nil, nil, err
	}
	return auth.NewFlow(store, newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())), store, nil
}

func (a *app) newClient(creds config.Credentials) *api.Client {
	opts := []api.Option{api.WithUserAgent("wpe-cli/" + version)}
	if a.httpClient != nil {
		opts = append(opts, api.WithHTTPClient(a.httpClient))
	}
	return api.New(creds, opts...)
}

// authenticatedClient makes sure credentials exist, logging in first if needed.
func (a *app) authenticatedClient(cmd *cobra.Command) (*api.Client, error) {
	flow, store, err := a.authFlow(cmd)
	if err != nil {
		return nil, err
	}

	ok, err := store.Exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		statusColor.Fprintln(cmd.ErrOrStderr(), "No saved credentials found. Log in to the WP Engine API:")
	}

	creds, err := flow.Ensure()
	if err != nil {
		return nil, err
	}
	return a.newClient(creds), nil
}

// reportError prints err for the operator, with a hint when logging in again would help.
func reportError(w io.Writer, err error) {
	if errors.Is(err, errInvalidCommand) {
		errorColor.Fprintf(w, "Invalid command: %s\n", strings.TrimPrefix(err.Error(), errInvalidCommand.Error()+": "))
		return
	}
	errorColor.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, api.ErrAuth) || errors.Is(err, config.ErrNotAuthenticated) {
		fmt.Fprintf(w, "Run %s to update your credentials.\n", identifierColor.Sprint("wpe auth login"))
	}
}

func RunCLI() {
	rootCmd := newRootCmd(&app{logToFile: true})
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

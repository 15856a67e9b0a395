// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"fmt"
	"strings"

	"wpe/internal/logger"

	"github.com/spf13/cobra"
)

// siteCompletionFunc completes site IDs, described by site name. It only
// uses credentials that are already stored and never prompts.
func siteCompletionFunc(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		store, err := a.store()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		creds, err := store.Get()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		sites, err := a.newClient(creds).ListSites(ctx)
		if err != nil {
			logger.Warn("Site completion failed", "error", err)
			return nil, cobra.ShellCompDirectiveError
		}

		var completions []string
		for _, s := range sites {
			if strings.HasPrefix(s.ID, toComplete) {
				completions = append(completions, fmt.Sprintf("%s\t%s", s.ID, s.Name))
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

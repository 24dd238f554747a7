// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/logging"
	"github.com/toeirei/srvinv/internal/model"
)

// nameSource lists every candidate value for one completion flag.
type nameSource func(ctx context.Context, inv *core.Inventory) ([]string, error)

func collect[T any](items []T, err error, name func(T) string) ([]string, error) {
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, name(it))
	}
	return out, nil
}

var (
	statusNames nameSource = func(ctx context.Context, inv *core.Inventory) ([]string, error) {
		items, err := inv.Statuses.Get(ctx, core.StatusQuery{})
		return collect(items, err, func(s model.ServerStatus) string { return s.Name })
	}
	typeNames nameSource = func(ctx context.Context, inv *core.Inventory) ([]string, error) {
		items, err := inv.Types.Get(ctx, core.TypeQuery{})
		return collect(items, err, func(t model.ServerType) string { return t.Name })
	}
	ipAddresses nameSource = func(ctx context.Context, inv *core.Inventory) ([]string, error) {
		items, err := inv.IPs.Get(ctx, core.IPQuery{})
		return collect(items, err, func(ip model.IP) string { return ip.Address })
	}
	tagNames nameSource = func(ctx context.Context, inv *core.Inventory) ([]string, error) {
		items, err := inv.Tags.Get(ctx, core.TagQuery{})
		return collect(items, err, func(t model.Tag) string { return t.Name })
	}
	adminNames nameSource = func(ctx context.Context, inv *core.Inventory) ([]string, error) {
		items, err := inv.Admins.Get(ctx, core.AdminQuery{})
		return collect(items, err, func(a model.Admin) string { return a.Name })
	}
)

// registerNameCompletions wires shell completion for the name-valued flags
// cmd defines. List flags complete the last comma-separated token.
func registerNameCompletions(a *app, cmd *cobra.Command) {
	flags := []struct {
		name string
		src  nameSource
		list bool
	}{
		{"status", statusNames, false},
		{"type", typeNames, false},
		{"ip", ipAddresses, false},
		{"ips", ipAddresses, true},
		{"tags", tagNames, true},
		{"admins", adminNames, true},
	}
	for _, f := range flags {
		if cmd.Flags().Lookup(f.name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(f.name, completeNames(a, f.src, f.list))
	}
}

func completeNames(a *app, src nameSource, list bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		// Completion runs without the persistent hooks.
		if err := a.setup(cmd); err != nil {
			logging.Debugf("completion: %v", err)
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer func() { _ = a.close() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		all, err := src(ctx, a.inv)
		if err != nil {
			logging.Debugf("completion: %v", err)
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return suggest(all, toComplete, list)
	}
}

// suggest filters all by the token being completed.
func suggest(all []string, toComplete string, list bool) ([]string, cobra.ShellCompDirective) {
	matches := core.SuggestNames(all, toComplete)
	if !list {
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, core.ApplySuggestion(toComplete, m))
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

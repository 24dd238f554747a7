// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/toeirei/srvinv/internal/i18n"
	"github.com/toeirei/srvinv/internal/logging"
	"github.com/toeirei/srvinv/ui/tui"
	"github.com/toeirei/srvinv/ui/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP",
		Long: `Starts the HTTP server: a JSON API under /api/v1 and plain-text views at
/server and /server_type. The listen address comes from http.listen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logging.Infof("%s", i18n.T("cli.serving", a.cfg.HTTP.Listen))
			return web.ListenAndServe(ctx, a.cfg.HTTP.Listen, web.NewRouter(a.inv, a.store))
		},
	}
	cmd.Flags().String("http.listen", ":8080", "Listen address")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse servers interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd, a)
		},
	}
}

func runBrowser(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return tui.Run(ctx, tui.InventorySource{Inv: a.inv})
}

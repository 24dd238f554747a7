// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/srvinv/internal/backup"
	"github.com/toeirei/srvinv/internal/db"
	"github.com/toeirei/srvinv/internal/i18n"
	"github.com/toeirei/srvinv/internal/logging"
)

var errNotConfirmed = errors.New("destructive operation not confirmed")

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of the database",
		Long: `Dumps the entire inventory (servers, relations, lookup tables and the audit
log) into a single, Zstandard-compressed JSON file.

If an output file is specified, '.zst' is appended unless already present.
Without one, 'srvinv-backup-YYYY-MM-DD.json.zst' is used.

Examples:
  srvinv backup
  srvinv backup inventory.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := backup.DefaultFileName(time.Now())
			if len(args) == 1 {
				file = backup.NormalizeFileName(args[0])
			}
			if err := backup.CreateFile(cmd.Context(), a.store, file); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.backup_written", file))
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file> --yes",
		Short: "Replace the inventory with a backup",
		Long: `Wipes every inventory table and restores the contents of a backup created
with 'srvinv backup', keeping the original ids. Requires --yes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			if err := backup.RestoreFile(cmd.Context(), a.store, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.restore_done", args[0]))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the destructive restore")
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	var toType, toDSN string
	var yes bool
	cmd := &cobra.Command{
		Use:   "migrate --to-type <db-type> --to-dsn <target-dsn> --yes",
		Short: "Copy the inventory into another database",
		Long: `Exports the current database and imports it into a target database,
applying the schema migrations to the target first. Whatever the target held
is replaced.

Example:
  srvinv migrate --to-type postgres --to-dsn "postgres://srvinv@localhost/srvinv" --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			target, err := db.New(toType, toDSN)
			if err != nil {
				return fmt.Errorf("open target %s database: %w", toType, err)
			}
			defer func() { _ = target.Close() }()
			if err := backup.Migrate(cmd.Context(), a.store, target); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.migrate_done", toType))
			return nil
		},
	}
	cmd.Flags().StringVar(&toType, "to-type", "", "Target database type (sqlite, postgres, mysql)")
	cmd.Flags().StringVar(&toDSN, "to-dsn", "", "Target connection string")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm replacing the target contents")
	_ = cmd.MarkFlagRequired("to-type")
	_ = cmd.MarkFlagRequired("to-dsn")
	return cmd
}

func newDBMaintainCmd(a *app) *cobra.Command {
	var timeout int
	cmd := &cobra.Command{
		Use:   "db-maintain",
		Short: "Run engine-specific database maintenance",
		Long: `Runs maintenance for the configured engine: PRAGMA optimize, VACUUM and an
integrity check on SQLite, VACUUM ANALYZE on PostgreSQL, OPTIMIZE TABLE on
MySQL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
				defer cancel()
			}
			start := time.Now()
			if err := a.store.RunMaintenance(ctx); err != nil {
				return err
			}
			logging.Debugf("maintenance took %s", time.Since(start))
			fmt.Fprintln(out(cmd), i18n.T("cli.maintenance_done"))
			return nil
		},
	}
	cmd.Flags().IntVar(&timeout, "timeout", 0, "Timeout in seconds (0 means no timeout)")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit log, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.store.AuditLog(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Timestamp.Local().Format(time.DateTime), e.Username, e.Action, e.Details,
				})
			}
			headers := []string{i18n.T("table.timestamp"), i18n.T("table.user"), i18n.T("table.action"), i18n.T("table.details")}
			printTable(out(cmd), headers, rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Show at most this many entries (0 for all)")
	return cmd
}

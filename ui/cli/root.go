// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/srvinv/buildvars"
	"github.com/toeirei/srvinv/internal/config"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/db"
	"github.com/toeirei/srvinv/internal/i18n"
	"github.com/toeirei/srvinv/internal/logging"
)

// skipStore marks commands that run without opening the database.
const skipStore = "srvinv/skip-store"

// app carries the state shared by one command tree: the loaded
// configuration and the opened store.
type app struct {
	cfg     config.Config
	cfgFile string
	verbose bool

	store db.Store
	inv   *core.Inventory
	// ownStore is false when the store was injected and must not be closed.
	ownStore bool
}

// Execute runs the CLI entrypoint and prints a translated message for any
// error. The main package turns a non-nil return into a non-zero exit.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
	}
	return err
}

// NewRootCmd creates a fresh root command. Tests build one per case.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srvinv",
		Short: "srvinv keeps track of servers, their addresses, tags and admins.",
		Long: `srvinv is a small server inventory. It records servers together with
their status, type, IP addresses, tags and responsible admins in an SQL
database (SQLite, PostgreSQL or MySQL).

Running without a subcommand on a terminal opens the interactive browser.`,
		Version:       buildvars.Resolve(nil).String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipStore] == "true" {
				return a.loadConfig(cmd)
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.OutOrStdout()) {
				return runBrowser(cmd, a)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging (includes SQL-level store logs)")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: srvinv.yaml in the user or system config dir)")
	cmd.PersistentFlags().String("database.type", "sqlite", "Database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("database.dsn", "./srvinv.db", "Database connection string (DSN)")
	cmd.PersistentFlags().String("language", "en", `Message language ("en", "de")`)
	cmd.PersistentFlags().String("log.level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAdminCmd(a),
		newIPCmd(a),
		newTagCmd(a),
		newStatusCmd(a),
		newTypeCmd(a),
		newServerCmd(a),
		newServeCmd(a),
		newBrowseCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newMigrateCmd(a),
		newDBMaintainCmd(a),
		newHistoryCmd(a),
		newInitConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig resolves the configuration and applies logging and language.
func (a *app) loadConfig(cmd *cobra.Command) error {
	var path *string
	if a.cfgFile != "" {
		if _, err := os.Stat(a.cfgFile); err != nil {
			return fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		path = &a.cfgFile
	}
	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warnf("ignoring log level: %v", err)
	}
	if a.verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}
	i18n.Init(cfg.Language)
	return nil
}

// setup loads the configuration and opens the store unless one was
// injected.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	return a.open()
}

// open connects to the configured database once.
func (a *app) open() error {
	if a.store != nil {
		if a.inv == nil {
			a.inv = core.NewInventory(a.store)
		}
		return nil
	}
	st, err := db.New(a.cfg.Database.Type, a.cfg.Database.Dsn)
	if err != nil {
		return fmt.Errorf("open %s database: %w", a.cfg.Database.Type, err)
	}
	logging.Debugf("opened %s database", a.cfg.Database.Type)
	a.store = st
	a.inv = core.NewInventory(st)
	a.ownStore = true
	return nil
}

func (a *app) close() error {
	if a.store == nil || !a.ownStore {
		return nil
	}
	err := a.store.Close()
	a.store, a.inv, a.ownStore = nil, nil, false
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			info := buildvars.Resolve(nil)
			date := info.Date
			if date == "" {
				date = "unknown"
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.version", info.Version, info.Commit, date))
		},
	}
}

func newInitConfigCmd(a *app) *cobra.Command {
	var system bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the effective configuration to the config file",
		Long: `Writes the configuration currently in effect (defaults, environment and
flags) to srvinv.yaml in the user config directory, or with --system to the
system-wide location.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteConfigFile(&a.cfg, system)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config_written", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "Write the system-wide config file")
	return cmd
}

// describeError renders err for the user in the active language.
func describeError(err error) string {
	switch {
	case errors.Is(err, errNotConfirmed):
		return i18n.T("cli.needs_yes")
	case core.IsValidation(err):
		return i18n.T("error.validation", err.Error())
	case core.IsNotFound(err):
		return i18n.T("error.not_found", err.Error())
	case core.IsConflict(err):
		return i18n.T("error.conflict", err.Error())
	default:
		return i18n.T("error.internal", err.Error())
	}
}

// out is a short hand for the command's stdout.
func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/i18n"
)

// serverFlags holds the raw flag values shared by the server subcommands.
type serverFlags struct {
	id, name, status, typ, description string
	ip, ips, tags, admins              string
}

// optional returns &value when the flag was given on the command line.
func optional(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

// names splits a comma-separated flag. A given but empty flag yields an
// empty, non-nil slice, which clears a relation set on update.
func names(cmd *cobra.Command, flag, value string) []string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	list := core.SplitNames(value)
	if list == nil {
		list = []string{}
	}
	return list
}

func newServerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage servers and their IPs, tags and admins",
	}
	cmd.AddCommand(
		newServerListCmd(a),
		newServerShowCmd(a),
		newServerAddCmd(a),
		newServerUpdateCmd(a),
		newServerDeleteCmd(a),
	)
	return cmd
}

func newServerListCmd(a *app) *cobra.Command {
	var f serverFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servers matching every given filter",
		Long: `Lists servers. Filters combine: --status and --type match by name, --ip
matches servers holding that address, --tags and --admins match servers
holding all of the listed names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := core.ServerQuery{
				Name:   optional(cmd, "name", f.name),
				Status: optional(cmd, "status", f.status),
				Type:   optional(cmd, "type", f.typ),
				IP:     optional(cmd, "ip", f.ip),
				Tags:   names(cmd, "tags", f.tags),
				Admins: names(cmd, "admins", f.admins),
			}
			if cmd.Flags().Changed("id") {
				id, err := core.ParseID(core.EntityServer, f.id)
				if err != nil {
					return err
				}
				q.ID = &id
			}
			servers, err := a.inv.Servers.Get(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(servers))
			for _, s := range servers {
				rows = append(rows, serverRow(s))
			}
			printTable(out(cmd), serverHeaders(), rows)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.id, "id", "", "Only the server with this id")
	fl.StringVar(&f.name, "name", "", "Only servers with this name")
	fl.StringVar(&f.status, "status", "", "Only servers with this status")
	fl.StringVar(&f.typ, "type", "", "Only servers of this type")
	fl.StringVar(&f.ip, "ip", "", "Only servers holding this address")
	fl.StringVar(&f.tags, "tags", "", "Comma-separated tags a server must all carry")
	fl.StringVar(&f.admins, "admins", "", "Comma-separated admins a server must all have")
	registerNameCompletions(a, cmd)
	return cmd
}

func newServerShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one server with its relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseID(core.EntityServer, args[0])
			if err != nil {
				return err
			}
			s, err := a.inv.Servers.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			printServer(out(cmd), *s)
			return nil
		},
	}
}

func newServerAddCmd(a *app) *cobra.Command {
	var f serverFlags
	cmd := &cobra.Command{
		Use:   "add <name> --status <status> --type <type>",
		Short: "Add a server",
		Long: `Adds a server. Status and type are given by name and must exist. IPs, tags
and admins are comma-separated lists of existing addresses and names.

Example:
  srvinv server add web01 --status Running --type Web --ips 10.0.0.1 --tags prod,edge`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.inv.Servers.Add(cmd.Context(), core.NewServer{
				Name:        args[0],
				Status:      f.status,
				Type:        f.typ,
				Description: optional(cmd, "description", f.description),
				IPs:         core.SplitNames(f.ips),
				Tags:        core.SplitNames(f.tags),
				Admins:      core.SplitNames(f.admins),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.added", "server", s.ID))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.status, "status", "", "Status name (required)")
	fl.StringVar(&f.typ, "type", "", "Type name (required)")
	fl.StringVar(&f.description, "description", "", "Free-form description")
	fl.StringVar(&f.ips, "ips", "", "Comma-separated IP addresses")
	fl.StringVar(&f.tags, "tags", "", "Comma-separated tag names")
	fl.StringVar(&f.admins, "admins", "", "Comma-separated admin names")
	_ = cmd.MarkFlagRequired("status")
	_ = cmd.MarkFlagRequired("type")
	registerNameCompletions(a, cmd)
	return cmd
}

func newServerUpdateCmd(a *app) *cobra.Command {
	var f serverFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a server",
		Long: `Changes the given fields of a server and leaves the rest untouched. A
relation flag replaces the whole set; pass an empty value (--tags "") to
clear it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseID(core.EntityServer, args[0])
			if err != nil {
				return err
			}
			s, err := a.inv.Servers.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			err = a.inv.Servers.Update(cmd.Context(), s, core.ServerChanges{
				Name:        optional(cmd, "name", f.name),
				Status:      optional(cmd, "status", f.status),
				Type:        optional(cmd, "type", f.typ),
				Description: optional(cmd, "description", f.description),
				IPs:         names(cmd, "ips", f.ips),
				Tags:        names(cmd, "tags", f.tags),
				Admins:      names(cmd, "admins", f.admins),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.updated", "server", s.ID))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "New name")
	fl.StringVar(&f.status, "status", "", "New status name")
	fl.StringVar(&f.typ, "type", "", "New type name")
	fl.StringVar(&f.description, "description", "", "New description")
	fl.StringVar(&f.ips, "ips", "", "Replace the IP set (comma-separated)")
	fl.StringVar(&f.tags, "tags", "", "Replace the tag set (comma-separated)")
	fl.StringVar(&f.admins, "admins", "", "Replace the admin set (comma-separated)")
	registerNameCompletions(a, cmd)
	return cmd
}

func newServerDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a server and its relation rows",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseID(core.EntityServer, args[0])
			if err != nil {
				return err
			}
			s, err := a.inv.Servers.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := a.inv.Servers.Delete(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.deleted", "server", id))
			return nil
		},
	}
}

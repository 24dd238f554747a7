// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/i18n"
	"github.com/toeirei/srvinv/internal/model"
)

// lookupDef describes one single-field entity (admin, ip, tag, status,
// type) for the generic list/show/add/update/delete commands.
type lookupDef[T any] struct {
	use     string
	aliases []string
	short   string
	entity  string
	// field is the name of the entity's only data field and of its flag.
	field  string
	header string

	get     func(ctx context.Context, inv *core.Inventory, id *int, value *string) ([]T, error)
	getByID func(ctx context.Context, inv *core.Inventory, id int) (*T, error)
	add     func(ctx context.Context, inv *core.Inventory, value string) (*T, error)
	update  func(ctx context.Context, inv *core.Inventory, row *T, value *string) error
	delete  func(ctx context.Context, inv *core.Inventory, row *T) error
	id      func(T) int
	value   func(T) string
}

func newLookupCmd[T any](a *app, d lookupDef[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     d.use,
		Aliases: d.aliases,
		Short:   d.short,
	}

	headers := func() []string { return []string{i18n.T("table.id"), i18n.T(d.header)} }
	rowsOf := func(items []T) [][]string {
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{itoa(d.id(it)), d.value(it)})
		}
		return rows
	}
	load := func(cmd *cobra.Command, raw string) (*T, error) {
		id, err := core.ParseID(d.entity, raw)
		if err != nil {
			return nil, err
		}
		return d.getByID(cmd.Context(), a.inv, id)
	}

	var listID, listValue string
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss, optionally filtered by id or %s", d.use, d.field),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var id *int
			if cmd.Flags().Changed("id") {
				n, err := core.ParseID(d.entity, listID)
				if err != nil {
					return err
				}
				id = &n
			}
			var value *string
			if cmd.Flags().Changed(d.field) {
				value = &listValue
			}
			items, err := d.get(cmd.Context(), a.inv, id, value)
			if err != nil {
				return err
			}
			printTable(out(cmd), headers(), rowsOf(items))
			return nil
		},
	}
	list.Flags().StringVar(&listID, "id", "", "Only the row with this id")
	list.Flags().StringVar(&listValue, d.field, "", "Only rows with this "+d.field)

	show := &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Show one %s", d.use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			printTable(out(cmd), headers(), rowsOf([]T{*row}))
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <" + d.field + ">",
		Short: fmt.Sprintf("Add a %s", d.use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := d.add(cmd.Context(), a.inv, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.added", d.use, d.id(*row)))
			return nil
		},
	}

	var newValue string
	update := &cobra.Command{
		Use:   "update <id> --" + d.field + " <value>",
		Short: fmt.Sprintf("Change the %s of a %s", d.field, d.use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			var value *string
			if cmd.Flags().Changed(d.field) {
				value = &newValue
			}
			if err := d.update(cmd.Context(), a.inv, row, value); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.updated", d.use, d.id(*row)))
			return nil
		},
	}
	update.Flags().StringVar(&newValue, d.field, "", "New "+d.field)

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s", d.use),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			id := d.id(*row)
			if err := d.delete(cmd.Context(), a.inv, row); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), i18n.T("cli.deleted", d.use, id))
			return nil
		},
	}

	cmd.AddCommand(list, show, add, update, del)
	return cmd
}

func newAdminCmd(a *app) *cobra.Command {
	return newLookupCmd(a, lookupDef[model.Admin]{
		use:    "admin",
		short:  "Manage admins",
		entity: core.EntityAdmin,
		field:  "name",
		header: "table.name",
		get: func(ctx context.Context, inv *core.Inventory, id *int, v *string) ([]model.Admin, error) {
			return inv.Admins.Get(ctx, core.AdminQuery{ID: id, Name: v})
		},
		getByID: func(ctx context.Context, inv *core.Inventory, id int) (*model.Admin, error) {
			return inv.Admins.GetByID(ctx, id)
		},
		add: func(ctx context.Context, inv *core.Inventory, v string) (*model.Admin, error) {
			return inv.Admins.Add(ctx, v)
		},
		update: func(ctx context.Context, inv *core.Inventory, row *model.Admin, v *string) error {
			return inv.Admins.Update(ctx, row, core.AdminChanges{Name: v})
		},
		delete: func(ctx context.Context, inv *core.Inventory, row *model.Admin) error {
			return inv.Admins.Delete(ctx, row)
		},
		id:    func(x model.Admin) int { return x.ID },
		value: func(x model.Admin) string { return x.Name },
	})
}

func newIPCmd(a *app) *cobra.Command {
	return newLookupCmd(a, lookupDef[model.IP]{
		use:    "ip",
		short:  "Manage IP addresses",
		entity: core.EntityIP,
		field:  "address",
		header: "table.address",
		get: func(ctx context.Context, inv *core.Inventory, id *int, v *string) ([]model.IP, error) {
			return inv.IPs.Get(ctx, core.IPQuery{ID: id, Address: v})
		},
		getByID: func(ctx context.Context, inv *core.Inventory, id int) (*model.IP, error) {
			return inv.IPs.GetByID(ctx, id)
		},
		add: func(ctx context.Context, inv *core.Inventory, v string) (*model.IP, error) {
			return inv.IPs.Add(ctx, v)
		},
		update: func(ctx context.Context, inv *core.Inventory, row *model.IP, v *string) error {
			return inv.IPs.Update(ctx, row, core.IPChanges{Address: v})
		},
		delete: func(ctx context.Context, inv *core.Inventory, row *model.IP) error {
			return inv.IPs.Delete(ctx, row)
		},
		id:    func(x model.IP) int { return x.ID },
		value: func(x model.IP) string { return x.Address },
	})
}

func newTagCmd(a *app) *cobra.Command {
	return newLookupCmd(a, lookupDef[model.Tag]{
		use:    "tag",
		short:  "Manage tags",
		entity: core.EntityTag,
		field:  "name",
		header: "table.name",
		get: func(ctx context.Context, inv *core.Inventory, id *int, v *string) ([]model.Tag, error) {
			return inv.Tags.Get(ctx, core.TagQuery{ID: id, Name: v})
		},
		getByID: func(ctx context.Context, inv *core.Inventory, id int) (*model.Tag, error) {
			return inv.Tags.GetByID(ctx, id)
		},
		add: func(ctx context.Context, inv *core.Inventory, v string) (*model.Tag, error) {
			return inv.Tags.Add(ctx, v)
		},
		update: func(ctx context.Context, inv *core.Inventory, row *model.Tag, v *string) error {
			return inv.Tags.Update(ctx, row, core.TagChanges{Name: v})
		},
		delete: func(ctx context.Context, inv *core.Inventory, row *model.Tag) error {
			return inv.Tags.Delete(ctx, row)
		},
		id:    func(x model.Tag) int { return x.ID },
		value: func(x model.Tag) string { return x.Name },
	})
}

func newStatusCmd(a *app) *cobra.Command {
	return newLookupCmd(a, lookupDef[model.ServerStatus]{
		use:    "status",
		short:  "Manage server statuses",
		entity: core.EntityStatus,
		field:  "name",
		header: "table.name",
		get: func(ctx context.Context, inv *core.Inventory, id *int, v *string) ([]model.ServerStatus, error) {
			return inv.Statuses.Get(ctx, core.StatusQuery{ID: id, Name: v})
		},
		getByID: func(ctx context.Context, inv *core.Inventory, id int) (*model.ServerStatus, error) {
			return inv.Statuses.GetByID(ctx, id)
		},
		add: func(ctx context.Context, inv *core.Inventory, v string) (*model.ServerStatus, error) {
			return inv.Statuses.Add(ctx, v)
		},
		update: func(ctx context.Context, inv *core.Inventory, row *model.ServerStatus, v *string) error {
			return inv.Statuses.Update(ctx, row, core.StatusChanges{Name: v})
		},
		delete: func(ctx context.Context, inv *core.Inventory, row *model.ServerStatus) error {
			return inv.Statuses.Delete(ctx, row)
		},
		id:    func(x model.ServerStatus) int { return x.ID },
		value: func(x model.ServerStatus) string { return x.Name },
	})
}

func newTypeCmd(a *app) *cobra.Command {
	return newLookupCmd(a, lookupDef[model.ServerType]{
		use:    "type",
		short:  "Manage server types",
		entity: core.EntityType,
		field:  "name",
		header: "table.name",
		get: func(ctx context.Context, inv *core.Inventory, id *int, v *string) ([]model.ServerType, error) {
			return inv.Types.Get(ctx, core.TypeQuery{ID: id, Name: v})
		},
		getByID: func(ctx context.Context, inv *core.Inventory, id int) (*model.ServerType, error) {
			return inv.Types.GetByID(ctx, id)
		},
		add: func(ctx context.Context, inv *core.Inventory, v string) (*model.ServerType, error) {
			return inv.Types.Add(ctx, v)
		},
		update: func(ctx context.Context, inv *core.Inventory, row *model.ServerType, v *string) error {
			return inv.Types.Update(ctx, row, core.TypeChanges{Name: v})
		},
		delete: func(ctx context.Context, inv *core.Inventory, row *model.ServerType) error {
			return inv.Types.Delete(ctx, row)
		},
		id:    func(x model.ServerType) int { return x.ID },
		value: func(x model.ServerType) string { return x.Name },
	})
}

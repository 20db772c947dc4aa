package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/transfer"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

// entityDef describes one CRUD command group.
type entityDef[T models.Entity] struct {
	use      string
	noun     string
	resource func(*inventory.Client) *inventory.Resource[T]
	table    func(a *app, deps console.Deps) *console.Table[T]
	dialog   func(deps console.Deps, onSuccess func(T)) *console.Dialog[T]
	// ownsDelete marks tables that register their own delete action.
	ownsDelete bool
	extra      func(a *app) []*cobra.Command
}

func entityCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		entityDef[models.Product]{
			use: "products", noun: "product",
			resource: (*inventory.Client).Products,
			table: func(a *app, deps console.Deps) *console.Table[models.Product] {
				return console.NewProductTable(deps, a.color).Table
			},
			dialog:     console.NewProductDialog,
			ownsDelete: true,
			extra:      productCommands,
		}.command(a),
		entityDef[models.Seller]{
			use: "sellers", noun: "seller",
			resource: (*inventory.Client).Sellers,
			table:    func(*app, console.Deps) *console.Table[models.Seller] { return console.SellerTable() },
			dialog:   console.NewSellerDialog,
		}.command(a),
		entityDef[models.Client]{
			use: "clients", noun: "client",
			resource: (*inventory.Client).Clients,
			table:    func(*app, console.Deps) *console.Table[models.Client] { return console.ClientTable() },
			dialog:   console.NewClientDialog,
		}.command(a),
		entityDef[models.Room]{
			use: "rooms", noun: "room",
			resource: (*inventory.Client).Rooms,
			table:    func(*app, console.Deps) *console.Table[models.Room] { return console.RoomTable() },
			dialog:   console.NewRoomDialog,
		}.command(a),
		entityDef[models.Unit]{
			use: "units", noun: "unit",
			resource: (*inventory.Client).Units,
			table:    func(a *app, _ console.Deps) *console.Table[models.Unit] { return console.UnitTable(a.color) },
			dialog:   console.NewUnitDialog,
		}.command(a),
		entityDef[models.User]{
			use: "users", noun: "user",
			resource: (*inventory.Client).Users,
			table:    func(a *app, _ console.Deps) *console.Table[models.User] { return console.UserTable(a.color) },
		}.command(a),
		entityDef[models.StockMovement]{
			use: "stock-movements", noun: "stock movement",
			resource: (*inventory.Client).StockMovements,
			table:    func(*app, console.Deps) *console.Table[models.StockMovement] { return console.StockMovementTable() },
		}.command(a),
		entityDef[models.Promotion]{
			use: "promotions", noun: "promotion",
			resource: (*inventory.Client).Promotions,
			table:    func(*app, console.Deps) *console.Table[models.Promotion] { return console.PromotionTable() },
			extra:    promotionCommands,
		}.command(a),
		entityDef[models.Warehouse]{
			use: "warehouses", noun: "warehouse",
			resource: (*inventory.Client).Warehouses,
			table:    func(*app, console.Deps) *console.Table[models.Warehouse] { return console.WarehouseTable() },
		}.command(a),
		entityDef[models.Location]{
			use: "locations", noun: "location",
			resource: (*inventory.Client).Locations,
			extra:    locationCommands,
		}.command(a),
		entityDef[models.Customer]{use: "customers", noun: "customer", resource: (*inventory.Client).Customers}.command(a),
		entityDef[models.Vendor]{use: "vendors", noun: "vendor", resource: (*inventory.Client).Vendors}.command(a),
		entityDef[models.Category]{use: "categories", noun: "category", resource: (*inventory.Client).Categories}.command(a),
		entityDef[models.Bin]{use: "bins", noun: "bin", resource: (*inventory.Client).Bins}.command(a),
		entityDef[models.Commission]{use: "commissions", noun: "commission", resource: (*inventory.Client).Commissions}.command(a),
		entityDef[models.PurchaseOrder]{use: "purchase-orders", noun: "purchase order", resource: (*inventory.Client).PurchaseOrders}.command(a),
		entityDef[models.Order]{use: "orders", noun: "order", resource: (*inventory.Client).Orders}.command(a),
		entityDef[models.Invoice]{use: "invoices", noun: "invoice", resource: (*inventory.Client).Invoices}.command(a),
	}
}

func (d entityDef[T]) command(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   d.use,
		Short: fmt.Sprintf("Manage %s", d.use),
	}
	cmd.AddCommand(d.listCmd(a), d.showCmd(a), d.createCmd(a), d.updateCmd(a), d.deleteCmd(a))
	if d.extra != nil {
		cmd.AddCommand(d.extra(a)...)
	}
	return cmd
}

func (d entityDef[T]) newTable(a *app, deps console.Deps) *console.Table[T] {
	if d.table == nil {
		return console.EntityTable[T]()
	}
	return d.table(a, deps)
}

func (d entityDef[T]) newDialog(a *app, deps console.Deps) *console.Dialog[T] {
	if d.dialog == nil {
		return console.NewEntityDialog(deps, d.noun, d.resource(a.client), nil)
	}
	return d.dialog(deps, nil)
}

func (d entityDef[T]) listCmd(a *app) *cobra.Command {
	var (
		page, pageSize int
		where          []string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", d.use),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := parseAssignments(where)
			if err != nil {
				return err
			}
			items, err := d.resource(a.client).List(cmd.Context(), stringMap(query))
			if err != nil {
				a.notifier.Error("Error", errorMessage(err, fmt.Sprintf("Failed to load %s", d.use)))
				return err
			}

			pager := console.NewPagination(pageSize, len(items))
			pager.GoTo(page)
			out := cmd.OutOrStdout()
			if err := d.newTable(a, a.deps(cmd)).Render(out, console.Slice(items, pager)); err != nil {
				return err
			}
			fmt.Fprintf(out, "\npage %d of %d (%d %s)\n", pager.Page(), pager.TotalPages(), pager.Total, d.use)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", console.DefaultPageSize, "rows per page")
	cmd.Flags().StringArrayVar(&where, "where", nil, "query filter key=value (repeatable)")
	return cmd
}

func (d entityDef[T]) showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: fmt.Sprintf("Show one %s", d.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.trigger(cmd, a, console.ActionView, args[0], nil)
		},
	}
}

func (d entityDef[T]) createCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s", d.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			row, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			form, err := transfer.DecodeRow[T](row)
			if err != nil {
				return err
			}

			dialog := d.newDialog(a, a.deps(cmd))
			// Reference dropdowns are informational here; the form is submitted anyway.
			_ = dialog.OpenCreate(cmd.Context())
			dialog.SetForm(form)
			saved, err := dialog.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), saved)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value key=value (repeatable)")
	return cmd
}

func (d entityDef[T]) updateCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: fmt.Sprintf("Update a %s", d.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				return errors.New("nothing to update, pass --set key=value")
			}
			return d.trigger(cmd, a, console.ActionEdit, args[0], changes)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value key=value (repeatable)")
	return cmd
}

func (d entityDef[T]) deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s", d.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := d.trigger(cmd, a, console.ActionDelete, args[0], nil)
			if errors.Is(err, console.ErrNotConfirmed) {
				fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
				return nil
			}
			return err
		},
	}
}

// trigger fetches one row and runs a table row action on it, the way a
// click on a table row would.
func (d entityDef[T]) trigger(cmd *cobra.Command, a *app, action console.Action, rawID string, changes transfer.Row) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", rawID, err)
	}

	ctx := cmd.Context()
	current, err := d.resource(a.client).Get(ctx, id)
	if err != nil {
		a.notifier.Error("Error", errorMessage(err, fmt.Sprintf("Failed to load %s", d.noun)))
		return err
	}

	deps := a.deps(cmd)
	table := d.newTable(a, deps)
	dialog := d.newDialog(a, deps)

	table.On(console.ActionView, func(_ context.Context, row T) error {
		return printJSON(cmd.OutOrStdout(), row)
	})
	table.On(console.ActionEdit, func(ctx context.Context, row T) error {
		form, err := mergeRow(row, changes)
		if err != nil {
			return err
		}
		_ = dialog.OpenEdit(ctx, row)
		dialog.SetForm(form)
		saved, err := dialog.Submit(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), saved)
	})
	if !d.ownsDelete {
		table.On(console.ActionDelete, func(ctx context.Context, row T) error {
			return dialog.Delete(ctx, row)
		})
	}

	return table.Trigger(ctx, action, []T{current}, id)
}

// mergeRow overlays changes on the current values of entity.
func mergeRow[T any](entity T, changes transfer.Row) (T, error) {
	rows, err := transfer.ToRows([]T{entity})
	if err != nil {
		return entity, err
	}
	row := rows[0]
	for k, v := range changes {
		row[k] = v
	}
	return transfer.DecodeRow[T](row)
}

// parseAssignments turns ["name=Basil", "price=2.5"] into a row.
func parseAssignments(pairs []string) (transfer.Row, error) {
	row := transfer.Row{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		row[key] = value
	}
	return row, nil
}

func stringMap(row transfer.Row) map[string]string {
	if len(row) == 0 {
		return nil
	}
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = fmt.Sprint(v)
	}
	return out
}

package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/store"
)

func promotionCommands(a *app) []*cobra.Command {
	listing := func(use, short string, public bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list := a.client.ActivePromotions
				if public {
					list = a.client.PublicPromotions
				}
				promos, err := list(cmd.Context())
				if err != nil {
					return err
				}
				return console.PromotionTable().Render(cmd.OutOrStdout(), promos)
			},
		}
	}
	return []*cobra.Command{
		listing("active", "List promotions running now", false),
		listing("public", "List promotions shown on the storefront", true),
	}
}

func locationCommands(a *app) []*cobra.Command {
	return []*cobra.Command{{
		Use:   "summary [ID]",
		Short: "Count active locations and describe the selected one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locations := store.NewLocations(a.client)
			if err := locations.Enable(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d of %d locations active\n", locations.ActiveCount(), len(locations.Items()))
			if len(args) == 0 {
				return nil
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			if !locations.Select(id) {
				return fmt.Errorf("no location with id %d", id)
			}
			current, _ := locations.Current()
			fmt.Fprintf(out, "selected: %s %s\n", current.Name, current.Address)
			return nil
		},
	}}
}

func newCRMCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "crm", Short: "Seller and client overview"}

	var leader int64
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarise sellers, clients and commissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crm := store.NewCRM(a.client)
			if err := crm.Load(cmd.Context()); err != nil {
				a.notifier.Error("Error", errorMessage(err, "Failed to load CRM data"))
				return err
			}

			s := crm.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sellers: %d\nclients: %d (unassigned %d)\ncommissions: %.2f\n",
				s.TotalSellers, s.TotalClients, s.Unassigned, s.CommissionTotal)
			for _, status := range []models.ClientStatus{models.ClientActive, models.ClientInactive, models.ClientProspect} {
				fmt.Fprintf(out, "  %-9s %d\n", status, s.ClientsByStatus[status])
			}
			if leader != 0 {
				fmt.Fprintf(out, "\nteam of seller %d:\n", leader)
				return console.SellerTable().Render(out, crm.Team(leader))
			}
			return nil
		},
	}
	stats.Flags().Int64Var(&leader, "team", 0, "also list the team led by this seller id")

	cmd.AddCommand(stats)
	return cmd
}

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "Company and notification settings"}

	var companySets []string
	company := &cobra.Command{
		Use:   "company",
		Short: "Show or change the company profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := a.client.CompanySettings(cmd.Context())
			if err != nil {
				return err
			}
			if len(companySets) == 0 {
				return printJSON(cmd.OutOrStdout(), current)
			}
			changes, err := parseAssignments(companySets)
			if err != nil {
				return err
			}
			updated, err := mergeRow(current, changes)
			if err != nil {
				return err
			}
			if err := a.client.UpdateCompanySettings(cmd.Context(), updated); err != nil {
				a.notifier.Error("Error", errorMessage(err, "Failed to save company settings"))
				return err
			}
			a.notifier.Success("Success", "Company settings saved")
			return nil
		},
	}
	company.Flags().StringArrayVar(&companySets, "set", nil, "field value key=value (repeatable)")

	var notifySets []string
	notifications := &cobra.Command{
		Use:   "notifications",
		Short: "Show or change notification preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := a.client.NotificationSettings(cmd.Context())
			if err != nil {
				return err
			}
			if len(notifySets) == 0 {
				return printJSON(cmd.OutOrStdout(), current)
			}
			changes, err := parseAssignments(notifySets)
			if err != nil {
				return err
			}
			updated, err := mergeRow(current, changes)
			if err != nil {
				return err
			}
			if err := a.client.UpdateNotificationSettings(cmd.Context(), updated); err != nil {
				a.notifier.Error("Error", errorMessage(err, "Failed to save notification settings"))
				return err
			}
			a.notifier.Success("Success", "Notification settings saved")
			return nil
		},
	}
	notifications.Flags().StringArrayVar(&notifySets, "set", nil, "field value key=value (repeatable)")

	cmd.AddCommand(company, notifications)
	return cmd
}

func newShopifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "shopify", Short: "Shopify integration"}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the store connection",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				status, err := a.client.ShopifyStatus(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), status)
			},
		},
		&cobra.Command{
			Use:   "products",
			Short: "List products known to Shopify",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				products, err := a.client.ShopifyProducts(cmd.Context())
				if err != nil {
					return err
				}
				return console.EntityTable[models.ShopifyProduct]().Render(cmd.OutOrStdout(), products)
			},
		},
		&cobra.Command{
			Use:   "sync",
			Short: "Push inventory to Shopify",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				result, err := a.client.ShopifySync(cmd.Context())
				if err != nil {
					a.notifier.Error("Sync failed", errorMessage(err, "Failed to sync with Shopify"))
					return err
				}
				a.notifier.Success("Sync complete", fmt.Sprintf("%d created, %d updated, %d errors",
					result.Created, result.Updated, len(result.Errors)))
				return nil
			},
		},
	)
	return cmd
}

func newCartCmd(a *app) *cobra.Command {
	var items []string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a basket with the promotions running now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wanted, err := parseAssignments(items)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			promos, err := a.client.ActivePromotions(ctx)
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(wanted))
			for id := range wanted {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			var cart store.Cart
			for _, raw := range ids {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid product id %q: %w", raw, err)
				}
				qty, err := strconv.Atoi(fmt.Sprint(wanted[raw]))
				if err != nil {
					return fmt.Errorf("invalid quantity for product %d: %w", id, err)
				}
				product, err := a.client.Products().Get(ctx, id)
				if err != nil {
					return err
				}
				cart.Add(product, qty)
			}

			now := time.Now()
			out := cmd.OutOrStdout()
			for _, line := range cart.Lines() {
				fmt.Fprintf(out, "%-24s x%-4d %10.2f\n", line.Product.Name, line.Quantity, line.Subtotal())
			}
			fmt.Fprintf(out, "subtotal %.2f\ndiscount %.2f\ntotal    %.2f\n",
				cart.Subtotal(), cart.Discount(promos, now), cart.Total(promos, now))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "product id and quantity id=qty (repeatable)")
	return cmd
}

func productCommands(a *app) []*cobra.Command {
	return []*cobra.Command{{
		Use:   "compare ID...",
		Short: fmt.Sprintf("Compare up to %d products side by side", store.ComparisonLimit),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var comparison store.Comparison
			for _, raw := range args {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", raw, err)
				}
				product, err := a.client.Products().Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if err := comparison.Add(product); err != nil {
					return err
				}
			}
			return console.NewProductTable(a.deps(cmd), a.color).Render(cmd.OutOrStdout(), comparison.Items())
		},
	}}
}

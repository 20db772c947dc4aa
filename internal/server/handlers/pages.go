package handlers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/service/reporting"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/store"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

// ListFunc loads the rows of a paginated page.
type ListFunc func(ctx context.Context, c *inventory.Client) ([]any, error)

// DetailFunc loads a page that is a single document.
type DetailFunc func(ctx context.Context, c *inventory.Client) (any, error)

// Page is one entry of the console route table. Exactly one of List and Detail is set.
type Page struct {
	Path   string
	Title  string
	List   ListFunc
	Detail DetailFunc
}

func listOf[T any](resource func(*inventory.Client) *inventory.Resource[T]) ListFunc {
	return func(ctx context.Context, c *inventory.Client) ([]any, error) {
		items, err := resource(c).List(ctx, nil)
		if err != nil {
			return nil, err
		}
		return boxed(items), nil
	}
}

func boxed[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Pages returns the console route table.
func Pages() []Page {
	return []Page{
		{Path: "/dashboard", Title: "Dashboard", Detail: dashboard},
		{Path: "/products", Title: "Products", List: listOf((*inventory.Client).Products)},
		{Path: "/customers", Title: "Customers", List: listOf((*inventory.Client).Customers)},
		{Path: "/purchase-orders", Title: "Purchase Orders", List: listOf((*inventory.Client).PurchaseOrders)},
		{Path: "/orders", Title: "Orders", List: listOf((*inventory.Client).Orders)},
		{Path: "/vendors", Title: "Vendors", List: listOf((*inventory.Client).Vendors)},
		{Path: "/categories", Title: "Categories", List: listOf((*inventory.Client).Categories)},
		{Path: "/inventory", Title: "Inventory", List: inventoryLevels},
		{Path: "/rooms", Title: "Rooms", List: listOf((*inventory.Client).Rooms)},
		{Path: "/units", Title: "Units", List: listOf((*inventory.Client).Units)},
		{Path: "/bins", Title: "Bins", List: listOf((*inventory.Client).Bins)},
		{Path: "/stock-movements", Title: "Stock Movements", List: listOf((*inventory.Client).StockMovements)},
		{Path: "/matrices", Title: "Storage Matrix", List: storageMatrix},
		{Path: "/settings", Title: "Settings", Detail: settings},
		{Path: "/notifications", Title: "Notifications", Detail: func(ctx context.Context, c *inventory.Client) (any, error) {
			return c.NotificationSettings(ctx)
		}},
		{Path: "/reports", Title: "Reports", Detail: dashboard},
		{Path: "/users", Title: "Users", List: listOf((*inventory.Client).Users)},
		{Path: "/profile", Title: "Profile", Detail: func(ctx context.Context, c *inventory.Client) (any, error) {
			return c.CurrentUser(ctx)
		}},
		{Path: "/export-import", Title: "Export / Import", Detail: func(context.Context, *inventory.Client) (any, error) {
			return map[string]any{"formats": []string{"json", "csv", "xlsx"}, "types": ExportTypes()}, nil
		}},
		{Path: "/wizard", Title: "Setup Wizard", Detail: wizard},
		{Path: "/promotions", Title: "Promotions", List: listOf((*inventory.Client).Promotions)},
		{Path: "/crm/dashboard", Title: "CRM Dashboard", Detail: crmDashboard},
		{Path: "/crm/sellers", Title: "Sellers", List: listOf((*inventory.Client).Sellers)},
		{Path: "/crm/clients", Title: "Clients", List: listOf((*inventory.Client).Clients)},
		{Path: "/crm/commissions", Title: "Commissions", List: listOf((*inventory.Client).Commissions)},
		{Path: "/invoices", Title: "Invoices", List: listOf((*inventory.Client).Invoices)},
		{Path: "/shopify/dashboard", Title: "Shopify", Detail: func(ctx context.Context, c *inventory.Client) (any, error) {
			return c.ShopifyStatus(ctx)
		}},
		{Path: "/shopify/products", Title: "Shopify Products", List: func(ctx context.Context, c *inventory.Client) ([]any, error) {
			products, err := c.ShopifyProducts(ctx)
			return boxed(products), err
		}},
		{Path: "/shopify/sync", Title: "Shopify Sync", Detail: func(ctx context.Context, c *inventory.Client) (any, error) {
			return c.ShopifyStatus(ctx)
		}},
	}
}

func dashboard(ctx context.Context, c *inventory.Client) (any, error) {
	return reporting.NewService(reporting.ClientSource{Client: c}, nil, nil, nil).Dashboard(ctx, 7)
}

type stockLevel struct {
	models.Product
	StockStatus models.StockStatus `json:"stock_status"`
}

func inventoryLevels(ctx context.Context, c *inventory.Client) ([]any, error) {
	products, err := c.Products().List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(products))
	for i, p := range products {
		out[i] = stockLevel{Product: p, StockStatus: p.Status()}
	}
	return out, nil
}

type matrixRow struct {
	Room      models.Room `json:"room"`
	Units     int         `json:"units"`
	Available int         `json:"available"`
}

func storageMatrix(ctx context.Context, c *inventory.Client) ([]any, error) {
	var (
		rooms []models.Room
		units []models.Unit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rooms, err = c.Rooms().List(gctx, nil); return err })
	g.Go(func() (err error) { units, err = c.Units().List(gctx, nil); return err })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]any, 0, len(rooms))
	for _, room := range rooms {
		row := matrixRow{Room: room}
		for _, u := range units {
			if u.RoomID != room.ID {
				continue
			}
			row.Units++
			if u.Status == models.UnitAvailable {
				row.Available++
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func settings(ctx context.Context, c *inventory.Client) (any, error) {
	var (
		company    models.CompanySettings
		warehouses []models.Warehouse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { company, err = c.CompanySettings(gctx); return err })
	g.Go(func() (err error) { warehouses, err = c.Warehouses().List(gctx, nil); return err })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return map[string]any{"company": company, "warehouses": warehouses}, nil
}

type wizardStep struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

func wizard(ctx context.Context, c *inventory.Client) (any, error) {
	company, err := c.CompanySettings(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := c.Warehouses().List(ctx, nil)
	if err != nil {
		return nil, err
	}
	products, err := c.Products().List(ctx, map[string]string{"per_page": "1"})
	if err != nil {
		return nil, err
	}
	return []wizardStep{
		{Name: "company", Done: company.Name != ""},
		{Name: "warehouse", Done: len(warehouses) > 0},
		{Name: "products", Done: len(products) > 0},
	}, nil
}

func crmDashboard(ctx context.Context, c *inventory.Client) (any, error) {
	crm := store.NewCRM(c)
	if err := crm.Load(ctx); err != nil {
		return nil, err
	}
	return crm.Stats(), nil
}

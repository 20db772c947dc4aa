package handlers

import (
	"context"
	"fmt"
	"sort"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/transfer"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

type rowLoader func(ctx context.Context, c *inventory.Client) ([]transfer.Row, error)

func rowsOf[T any](resource func(*inventory.Client) *inventory.Resource[T]) rowLoader {
	return func(ctx context.Context, c *inventory.Client) ([]transfer.Row, error) {
		items, err := resource(c).List(ctx, nil)
		if err != nil {
			return nil, err
		}
		return transfer.ToRows(items)
	}
}

var exporters = map[string]rowLoader{
	"products":        rowsOf((*inventory.Client).Products),
	"sellers":         rowsOf((*inventory.Client).Sellers),
	"clients":         rowsOf((*inventory.Client).Clients),
	"customers":       rowsOf((*inventory.Client).Customers),
	"rooms":           rowsOf((*inventory.Client).Rooms),
	"units":           rowsOf((*inventory.Client).Units),
	"bins":            rowsOf((*inventory.Client).Bins),
	"stock-movements": rowsOf((*inventory.Client).StockMovements),
	"vendors":         rowsOf((*inventory.Client).Vendors),
	"categories":      rowsOf((*inventory.Client).Categories),
	"promotions":      rowsOf((*inventory.Client).Promotions),
	"purchase-orders": rowsOf((*inventory.Client).PurchaseOrders),
}

// ExportTypes lists the entity types the gateway can export.
func ExportTypes() []string {
	types := make([]string, 0, len(exporters))
	for name := range exporters {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// LoadRows fetches every record of an exportable entity type as rows.
func LoadRows(ctx context.Context, c *inventory.Client, entityType string) ([]transfer.Row, error) {
	load, ok := exporters[entityType]
	if !ok {
		return nil, fmt.Errorf("unknown export type %q", entityType)
	}
	return load(ctx, c)
}

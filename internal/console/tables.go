package console

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

const dateLayout = "2006-01-02"

func idColumn[T models.Entity]() Column[T] {
	return Column[T]{Header: "ID", Value: func(v T) string { return strconv.FormatInt(v.EntityID(), 10) }}
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// EntityTable shows id and display name for any entity.
func EntityTable[T models.Entity]() *Table[T] {
	return NewTable(idColumn[T](), Column[T]{Header: "NAME", Value: func(v T) string { return v.DisplayName() }})
}

// ProductTable lists products and deletes them itself.
type ProductTable struct {
	*Table[models.Product]
	resource  *inventory.Resource[models.Product]
	notifier  Notifier
	confirmer Confirmer
	logger    *zap.Logger
}

func NewProductTable(deps Deps, color bool) *ProductTable {
	t := &ProductTable{
		resource:  deps.Client.Products(),
		notifier:  deps.Notifier,
		confirmer: deps.confirmer(),
		logger:    deps.logger("table.product"),
	}
	t.Table = NewTable(
		idColumn[models.Product](),
		Column[models.Product]{Header: "NAME", Value: func(p models.Product) string { return p.Name }},
		Column[models.Product]{Header: "SKU", Value: func(p models.Product) string { return p.SKU }},
		Column[models.Product]{Header: "CATEGORY", Value: func(p models.Product) string { return p.Category }},
		Column[models.Product]{Header: "QTY", Value: func(p models.Product) string { return strconv.Itoa(p.Quantity) }},
		Column[models.Product]{Header: "PRICE", Value: func(p models.Product) string { return money(p.Price) }},
		Column[models.Product]{Header: "STATUS", Value: func(p models.Product) string { return StockBadge(p).Render(color) }},
	)
	t.Color = color
	t.On(ActionDelete, t.Delete)
	return t
}

// Delete asks for confirmation, then removes the product through the API.
func (t *ProductTable) Delete(ctx context.Context, p models.Product) error {
	if !t.confirmer.Confirm(fmt.Sprintf("Delete product %q?", p.Name)) {
		return ErrNotConfirmed
	}
	if err := t.resource.Delete(ctx, p.ID); err != nil {
		t.logger.Error("delete product", zap.Int64("id", p.ID), zap.Error(err))
		msg, ok := inventory.ServerMessage(err)
		if !ok {
			msg = "Failed to delete product"
		}
		t.notifier.Error("Error", msg)
		return err
	}
	t.notifier.Success("Success", "Product deleted successfully")
	return nil
}

func SellerTable() *Table[models.Seller] {
	return NewTable(
		idColumn[models.Seller](),
		Column[models.Seller]{Header: "NAME", Value: func(s models.Seller) string { return s.Name }},
		Column[models.Seller]{Header: "EMAIL", Value: func(s models.Seller) string { return s.Email }},
		Column[models.Seller]{Header: "RATE", Value: func(s models.Seller) string { return fmt.Sprintf("%.1f%%", s.CommissionRate) }},
		Column[models.Seller]{Header: "LEADER", Value: func(s models.Seller) string { return optionalID(s.LeaderID) }},
	)
}

func ClientTable() *Table[models.Client] {
	return NewTable(
		idColumn[models.Client](),
		Column[models.Client]{Header: "NAME", Value: func(c models.Client) string { return c.Name }},
		Column[models.Client]{Header: "COMPANY", Value: func(c models.Client) string { return c.Company }},
		Column[models.Client]{Header: "STATUS", Value: func(c models.Client) string { return string(c.Status) }},
		Column[models.Client]{Header: "SELLER", Value: func(c models.Client) string { return optionalID(c.SellerID) }},
	)
}

func RoomTable() *Table[models.Room] {
	return NewTable(
		idColumn[models.Room](),
		Column[models.Room]{Header: "NAME", Value: func(r models.Room) string { return r.Name }},
		Column[models.Room]{Header: "CUSTOMER", Value: func(r models.Room) string { return optionalID(r.CustomerID) }},
	)
}

func UnitTable(color bool) *Table[models.Unit] {
	return NewTable(
		idColumn[models.Unit](),
		Column[models.Unit]{Header: "NUMBER", Value: func(u models.Unit) string { return u.Number }},
		Column[models.Unit]{Header: "ROOM", Value: func(u models.Unit) string { return strconv.FormatInt(u.RoomID, 10) }},
		Column[models.Unit]{Header: "STATUS", Value: func(u models.Unit) string { return UnitBadge(u).Render(color) }},
	)
}

func UserTable(color bool) *Table[models.User] {
	return NewTable(
		idColumn[models.User](),
		Column[models.User]{Header: "NAME", Value: func(u models.User) string { return u.Name }},
		Column[models.User]{Header: "EMAIL", Value: func(u models.User) string { return u.Email }},
		Column[models.User]{Header: "ROLE", Value: func(u models.User) string { return RoleBadge(u).Render(color) }},
	)
}

func StockMovementTable() *Table[models.StockMovement] {
	return NewTable(
		idColumn[models.StockMovement](),
		Column[models.StockMovement]{Header: "DATE", Value: func(m models.StockMovement) string { return m.Date.Format(dateLayout) }},
		Column[models.StockMovement]{Header: "PRODUCT", Value: func(m models.StockMovement) string { return strconv.FormatInt(m.ProductID, 10) }},
		Column[models.StockMovement]{Header: "TYPE", Value: func(m models.StockMovement) string { return string(m.Type) }},
		Column[models.StockMovement]{Header: "QTY", Value: func(m models.StockMovement) string { return strconv.Itoa(m.Signed()) }},
		Column[models.StockMovement]{Header: "BY", Value: func(m models.StockMovement) string { return m.PerformedBy }},
	)
}

func PromotionTable() *Table[models.Promotion] {
	return NewTable(
		idColumn[models.Promotion](),
		Column[models.Promotion]{Header: "TITLE", Value: func(p models.Promotion) string { return p.Title }},
		Column[models.Promotion]{Header: "DISCOUNT", Value: func(p models.Promotion) string { return fmt.Sprintf("%.0f%%", p.Discount) }},
		Column[models.Promotion]{Header: "WINDOW", Value: func(p models.Promotion) string {
			return p.StartDate.Format(dateLayout) + " → " + p.EndDate.Format(dateLayout)
		}},
	)
}

func WarehouseTable() *Table[models.Warehouse] {
	return NewTable(
		idColumn[models.Warehouse](),
		Column[models.Warehouse]{Header: "NAME", Value: func(w models.Warehouse) string { return w.Name }},
		Column[models.Warehouse]{Header: "MANAGER", Value: func(w models.Warehouse) string { return w.Manager }},
		Column[models.Warehouse]{Header: "USED", Value: func(w models.Warehouse) string { return fmt.Sprintf("%.0f%%", w.Utilization()) }},
	)
}

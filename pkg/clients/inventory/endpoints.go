package inventory

import (
	"context"
	"net/http"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

func (c *Client) Products() *Resource[models.Product] {
	return NewResource[models.Product](c, "/products")
}

func (c *Client) StockMovements() *Resource[models.StockMovement] {
	return NewResource[models.StockMovement](c, "/stock-movements")
}

func (c *Client) Sellers() *Resource[models.Seller] {
	return NewResource[models.Seller](c, "/sellers")
}

func (c *Client) Clients() *Resource[models.Client] {
	return NewResource[models.Client](c, "/clients")
}

func (c *Client) Commissions() *Resource[models.Commission] {
	return NewResource[models.Commission](c, "/commissions")
}

func (c *Client) Rooms() *Resource[models.Room] {
	return NewResource[models.Room](c, "/rooms")
}

func (c *Client) Units() *Resource[models.Unit] {
	return NewResource[models.Unit](c, "/units")
}

func (c *Client) Bins() *Resource[models.Bin] {
	return NewResource[models.Bin](c, "/bins")
}

func (c *Client) Warehouses() *Resource[models.Warehouse] {
	return NewResource[models.Warehouse](c, "/warehouses")
}

func (c *Client) Promotions() *Resource[models.Promotion] {
	return NewResource[models.Promotion](c, "/promotions")
}

func (c *Client) PurchaseOrders() *Resource[models.PurchaseOrder] {
	return NewResource[models.PurchaseOrder](c, "/purchase-orders")
}

func (c *Client) Users() *Resource[models.User] {
	return NewResource[models.User](c, "/users")
}

func (c *Client) Locations() *Resource[models.Location] {
	return NewResource[models.Location](c, "/locations")
}

func (c *Client) Customers() *Resource[models.Customer] {
	return NewResource[models.Customer](c, "/customers")
}

func (c *Client) Vendors() *Resource[models.Vendor] {
	return NewResource[models.Vendor](c, "/vendors")
}

func (c *Client) Categories() *Resource[models.Category] {
	return NewResource[models.Category](c, "/categories")
}

func (c *Client) Orders() *Resource[models.Order] {
	return NewResource[models.Order](c, "/orders")
}

func (c *Client) Invoices() *Resource[models.Invoice] {
	return NewResource[models.Invoice](c, "/invoices")
}

// ActivePromotions lists promotions the backend currently applies.
func (c *Client) ActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	return c.promotionList(ctx, "/active-promotions")
}

// PublicPromotions lists promotions visible without signing in.
func (c *Client) PublicPromotions(ctx context.Context) ([]models.Promotion, error) {
	return c.promotionList(ctx, "/public/promotions")
}

func (c *Client) promotionList(ctx context.Context, path string) ([]models.Promotion, error) {
	var promos []models.Promotion
	if err := c.execute(ctx, http.MethodGet, path, nil, nil, &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

func (c *Client) CompanySettings(ctx context.Context) (models.CompanySettings, error) {
	var settings models.CompanySettings
	err := c.execute(ctx, http.MethodGet, "/settings/company", nil, nil, &settings)
	return settings, err
}

func (c *Client) UpdateCompanySettings(ctx context.Context, settings models.CompanySettings) error {
	return c.execute(ctx, http.MethodPut, "/settings/company", settings, nil, nil)
}

func (c *Client) NotificationSettings(ctx context.Context) (models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := c.execute(ctx, http.MethodGet, "/settings/notifications", nil, nil, &settings)
	return settings, err
}

func (c *Client) UpdateNotificationSettings(ctx context.Context, settings models.NotificationSettings) error {
	return c.execute(ctx, http.MethodPut, "/settings/notifications", settings, nil, nil)
}

func (c *Client) ShopifyStatus(ctx context.Context) (models.ShopifyStatus, error) {
	var status models.ShopifyStatus
	err := c.execute(ctx, http.MethodGet, "/shopify/status", nil, nil, &status)
	return status, err
}

func (c *Client) ShopifyProducts(ctx context.Context) ([]models.ShopifyProduct, error) {
	var products []models.ShopifyProduct
	if err := c.execute(ctx, http.MethodGet, "/shopify/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ShopifySync(ctx context.Context) (models.ShopifySyncResult, error) {
	var result models.ShopifySyncResult
	err := c.execute(ctx, http.MethodPost, "/shopify/sync", nil, nil, &result)
	return result, err
}

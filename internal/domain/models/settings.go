package models

// CompanySettings is the company profile document.
type CompanySettings struct {
	Name     string `json:"name" mapstructure:"name" validate:"required"`
	Email    string `json:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" mapstructure:"phone"`
	Address  string `json:"address,omitempty" mapstructure:"address"`
	Currency string `json:"currency,omitempty" mapstructure:"currency"`
	TaxID    string `json:"tax_id,omitempty" mapstructure:"tax_id"`
}

// NotificationSettings toggles the backend's outbound notifications.
type NotificationSettings struct {
	LowStockAlerts    bool   `json:"low_stock_alerts" mapstructure:"low_stock_alerts"`
	OrderUpdates      bool   `json:"order_updates" mapstructure:"order_updates"`
	EmailDigest       bool   `json:"email_digest" mapstructure:"email_digest"`
	DigestFrequency   string `json:"digest_frequency,omitempty" mapstructure:"digest_frequency"`
	LowStockThreshold int    `json:"low_stock_threshold,omitempty" mapstructure:"low_stock_threshold"`
}

// ShopifyStatus describes the store connection.
type ShopifyStatus struct {
	Connected  bool   `json:"connected" mapstructure:"connected"`
	ShopDomain string `json:"shop_domain,omitempty" mapstructure:"shop_domain"`
	LastSyncAt string `json:"last_sync_at,omitempty" mapstructure:"last_sync_at"`
}

// ShopifyProduct is a product as listed by the Shopify integration.
type ShopifyProduct struct {
	ID        int64   `json:"id" mapstructure:"id"`
	ShopifyID string  `json:"shopify_id" mapstructure:"shopify_id"`
	Title     string  `json:"title" mapstructure:"title"`
	SKU       string  `json:"sku" mapstructure:"sku"`
	Price     float64 `json:"price" mapstructure:"price"`
	Inventory int     `json:"inventory_quantity" mapstructure:"inventory_quantity"`
	Synced    bool    `json:"synced" mapstructure:"synced"`
}

func (p ShopifyProduct) EntityID() int64     { return p.ID }
func (p ShopifyProduct) DisplayName() string { return p.Title }

// ShopifySyncResult summarises a sync run.
type ShopifySyncResult struct {
	Created int      `json:"created" mapstructure:"created"`
	Updated int      `json:"updated" mapstructure:"updated"`
	Errors  []string `json:"errors" mapstructure:"errors"`
}

package models

import "time"

// StockStatus is the display-only classification of a product's quantity.
type StockStatus string

const (
	StockIn  StockStatus = "In Stock"
	StockLow StockStatus = "Low Stock"
	StockOut StockStatus = "Out of Stock"
)

// ClassifyStock buckets a quantity against its per-product threshold.
func ClassifyStock(quantity, threshold int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= threshold:
		return StockLow
	default:
		return StockIn
	}
}

// Product represents a catalog item with its stock level.
type Product struct {
	ID          int64     `json:"id" mapstructure:"id"`
	Name        string    `json:"name" mapstructure:"name" validate:"required"`
	SKU         string    `json:"sku" mapstructure:"sku" validate:"required"`
	Description string    `json:"description,omitempty" mapstructure:"description"`
	Price       float64   `json:"price" mapstructure:"price" validate:"gte=0"`
	CostPrice   float64   `json:"costPrice" mapstructure:"costPrice" validate:"gte=0"`
	Quantity    int       `json:"quantity" mapstructure:"quantity" validate:"gte=0"`
	Threshold   int       `json:"threshold" mapstructure:"threshold" validate:"gte=0"`
	Category    string    `json:"category" mapstructure:"category"`
	Location    string    `json:"location" mapstructure:"location"`
	Image       string    `json:"image,omitempty" mapstructure:"image"`
	VendorID    *int64    `json:"vendor_id,omitempty" mapstructure:"vendor_id"`
	CreatedAt   time.Time `json:"created_at,omitzero" mapstructure:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitzero" mapstructure:"updated_at"`
}

func (p Product) EntityID() int64     { return p.ID }
func (p Product) DisplayName() string { return p.Name }

// Status derives the stock badge from the product's own fields.
func (p Product) Status() StockStatus {
	return ClassifyStock(p.Quantity, p.Threshold)
}

// Category is a product grouping.
type Category struct {
	ID          int64  `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name" validate:"required"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

func (c Category) EntityID() int64     { return c.ID }
func (c Category) DisplayName() string { return c.Name }

// Vendor supplies products and receives purchase orders.
type Vendor struct {
	ID      int64  `json:"id" mapstructure:"id"`
	Name    string `json:"name" mapstructure:"name" validate:"required"`
	Email   string `json:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" mapstructure:"phone"`
	Address string `json:"address,omitempty" mapstructure:"address"`
}

func (v Vendor) EntityID() int64     { return v.ID }
func (v Vendor) DisplayName() string { return v.Name }

package models

import "time"

// PurchaseOrderItem is one line of a purchase order.
type PurchaseOrderItem struct {
	ProductID int64   `json:"product_id" mapstructure:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" mapstructure:"quantity" validate:"gt=0"`
	UnitCost  float64 `json:"unit_cost" mapstructure:"unit_cost" validate:"gte=0"`
}

// PurchaseOrder is an order placed with a vendor.
type PurchaseOrder struct {
	ID         int64               `json:"id" mapstructure:"id"`
	Number     string              `json:"po_number" mapstructure:"po_number"`
	VendorID   int64               `json:"vendor_id" mapstructure:"vendor_id" validate:"required"`
	Status     string              `json:"status" mapstructure:"status"`
	Items      []PurchaseOrderItem `json:"items" mapstructure:"items" validate:"dive"`
	Total      float64             `json:"total" mapstructure:"total"`
	ExpectedAt *time.Time          `json:"expected_at,omitempty" mapstructure:"expected_at"`
}

func (o PurchaseOrder) EntityID() int64 { return o.ID }
func (o PurchaseOrder) DisplayName() string {
	if o.Number != "" {
		return o.Number
	}
	return "PO #" + itoa(o.ID)
}

// ComputedTotal sums the line items.
func (o PurchaseOrder) ComputedTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitCost
	}
	return total
}

// Order is a sales order. Invoice is its billing document.
type Order struct {
	ID         int64     `json:"id" mapstructure:"id"`
	Number     string    `json:"order_number" mapstructure:"order_number"`
	CustomerID int64     `json:"customer_id" mapstructure:"customer_id"`
	Status     string    `json:"status" mapstructure:"status"`
	Total      float64   `json:"total" mapstructure:"total"`
	CreatedAt  time.Time `json:"created_at,omitzero" mapstructure:"created_at"`
}

func (o Order) EntityID() int64     { return o.ID }
func (o Order) DisplayName() string { return o.Number }

type Invoice struct {
	ID      int64     `json:"id" mapstructure:"id"`
	Number  string    `json:"invoice_number" mapstructure:"invoice_number"`
	OrderID int64     `json:"order_id" mapstructure:"order_id"`
	Amount  float64   `json:"amount" mapstructure:"amount"`
	Status  string    `json:"status" mapstructure:"status"`
	DueDate time.Time `json:"due_date,omitzero" mapstructure:"due_date"`
}

func (i Invoice) EntityID() int64     { return i.ID }
func (i Invoice) DisplayName() string { return i.Number }

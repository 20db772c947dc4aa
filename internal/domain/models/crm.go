package models

import "time"

// ClientStatus is the CRM lifecycle of a client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientProspect ClientStatus = "prospect"
)

// Seller is a member of the sales team. LeaderID references another seller.
type Seller struct {
	ID             int64     `json:"id" mapstructure:"id"`
	Name           string    `json:"name" mapstructure:"name" validate:"required"`
	Email          string    `json:"email" mapstructure:"email" validate:"required,email"`
	Phone          string    `json:"phone,omitempty" mapstructure:"phone"`
	Department     string    `json:"department,omitempty" mapstructure:"department"`
	CommissionRate float64   `json:"commission_rate" mapstructure:"commission_rate" validate:"gte=0,lte=100"`
	LeaderID       *int64    `json:"leader_id,omitempty" mapstructure:"leader_id"`
	Status         string    `json:"status,omitempty" mapstructure:"status"`
	CreatedAt      time.Time `json:"created_at,omitzero" mapstructure:"created_at"`
}

func (s Seller) EntityID() int64     { return s.ID }
func (s Seller) DisplayName() string { return s.Name }

// Client is a CRM customer record, optionally assigned to a seller.
type Client struct {
	ID        int64        `json:"id" mapstructure:"id"`
	Name      string       `json:"name" mapstructure:"name" validate:"required"`
	Email     string       `json:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`
	Phone     string       `json:"phone,omitempty" mapstructure:"phone"`
	Company   string       `json:"company,omitempty" mapstructure:"company"`
	Address   string       `json:"address,omitempty" mapstructure:"address"`
	Status    ClientStatus `json:"status" mapstructure:"status" validate:"required,oneof=active inactive prospect"`
	SellerID  *int64       `json:"seller_id,omitempty" mapstructure:"seller_id"`
	Notes     string       `json:"notes,omitempty" mapstructure:"notes"`
	CreatedAt time.Time    `json:"created_at,omitzero" mapstructure:"created_at"`
}

func (c Client) EntityID() int64     { return c.ID }
func (c Client) DisplayName() string { return c.Name }

// Commission is an amount owed to a seller.
type Commission struct {
	ID        int64     `json:"id" mapstructure:"id"`
	SellerID  int64     `json:"seller_id" mapstructure:"seller_id" validate:"required"`
	ClientID  *int64    `json:"client_id,omitempty" mapstructure:"client_id"`
	Amount    float64   `json:"amount" mapstructure:"amount" validate:"gte=0"`
	Rate      float64   `json:"rate" mapstructure:"rate"`
	Status    string    `json:"status" mapstructure:"status"`
	CreatedAt time.Time `json:"created_at,omitzero" mapstructure:"created_at"`
}

func (c Commission) EntityID() int64 { return c.ID }
func (c Commission) DisplayName() string {
	return "commission #" + itoa(c.ID)
}

// Customer owns rooms in the storage hierarchy.
type Customer struct {
	ID      int64  `json:"id" mapstructure:"id"`
	Name    string `json:"name" mapstructure:"name" validate:"required"`
	Email   string `json:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" mapstructure:"phone"`
	Address string `json:"address,omitempty" mapstructure:"address"`
}

func (c Customer) EntityID() int64     { return c.ID }
func (c Customer) DisplayName() string { return c.Name }

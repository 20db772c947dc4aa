package models

import (
	"strconv"
	"time"
)

// UnitStatus tracks whether a storage unit can take goods.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitOccupied    UnitStatus = "occupied"
	UnitMaintenance UnitStatus = "maintenance"
)

// Room is the top of the storage hierarchy, optionally owned by a customer.
type Room struct {
	ID         int64     `json:"id" mapstructure:"id"`
	Name       string    `json:"name" mapstructure:"name" validate:"required"`
	CustomerID *int64    `json:"customerId,omitempty" mapstructure:"customerId"`
	CreatedAt  time.Time `json:"created_at,omitzero" mapstructure:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitzero" mapstructure:"updated_at"`
}

func (r Room) EntityID() int64     { return r.ID }
func (r Room) DisplayName() string { return r.Name }

// Unit belongs to a room.
type Unit struct {
	ID        int64      `json:"id" mapstructure:"id"`
	Number    string     `json:"number" mapstructure:"number" validate:"required"`
	RoomID    int64      `json:"roomId" mapstructure:"roomId" validate:"required"`
	Status    UnitStatus `json:"status" mapstructure:"status" validate:"omitempty,oneof=available occupied maintenance"`
	CreatedAt time.Time  `json:"created_at,omitzero" mapstructure:"created_at"`
	UpdatedAt time.Time  `json:"updated_at,omitzero" mapstructure:"updated_at"`
}

func (u Unit) EntityID() int64     { return u.ID }
func (u Unit) DisplayName() string { return "unit " + u.Number }

// Bin is the smallest storage location, inside a unit.
type Bin struct {
	ID       int64  `json:"id" mapstructure:"id"`
	Name     string `json:"name" mapstructure:"name" validate:"required"`
	UnitID   int64  `json:"unitId" mapstructure:"unitId" validate:"required"`
	Capacity int    `json:"capacity" mapstructure:"capacity" validate:"gte=0"`
}

func (b Bin) EntityID() int64     { return b.ID }
func (b Bin) DisplayName() string { return b.Name }

// Warehouse is shown read-only in settings.
type Warehouse struct {
	ID              int64  `json:"id" mapstructure:"id"`
	Name            string `json:"name" mapstructure:"name" validate:"required"`
	Location        string `json:"location" mapstructure:"location"`
	Manager         string `json:"manager" mapstructure:"manager"`
	Capacity        int    `json:"capacity" mapstructure:"capacity"`
	CurrentCapacity int    `json:"currentCapacity" mapstructure:"currentCapacity"`
}

func (w Warehouse) EntityID() int64     { return w.ID }
func (w Warehouse) DisplayName() string { return w.Name }

// Utilization returns the used share of capacity in percent.
func (w Warehouse) Utilization() float64 {
	if w.Capacity <= 0 {
		return 0
	}
	return float64(w.CurrentCapacity) / float64(w.Capacity) * 100
}

// Location is a clinic or shop site.
type Location struct {
	ID      int64  `json:"id" mapstructure:"id"`
	Name    string `json:"name" mapstructure:"name" validate:"required"`
	Address string `json:"address,omitempty" mapstructure:"address"`
	Active  bool   `json:"active" mapstructure:"active"`
}

func (l Location) EntityID() int64     { return l.ID }
func (l Location) DisplayName() string { return l.Name }

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

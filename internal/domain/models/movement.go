package models

import "time"

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// StockMovement is a read-only record of stock entering or leaving.
type StockMovement struct {
	ID          int64        `json:"id" mapstructure:"id"`
	ProductID   int64        `json:"productId" mapstructure:"productId" validate:"required"`
	Quantity    int          `json:"quantity" mapstructure:"quantity" validate:"gt=0"`
	Type        MovementType `json:"type" mapstructure:"type" validate:"required,oneof=in out"`
	Reason      string       `json:"reason" mapstructure:"reason"`
	PerformedBy string       `json:"performedBy" mapstructure:"performedBy"`
	Date        time.Time    `json:"date" mapstructure:"date"`
}

func (m StockMovement) EntityID() int64 { return m.ID }
func (m StockMovement) DisplayName() string {
	return "movement #" + itoa(m.ID)
}

// Signed returns the quantity with its direction applied.
func (m StockMovement) Signed() int {
	if m.Type == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

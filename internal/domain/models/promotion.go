package models

import "time"

// Promotion is a time-boxed discount on one or more categories.
type Promotion struct {
	ID         int64     `json:"id" mapstructure:"id"`
	Title      string    `json:"title" mapstructure:"title" validate:"required"`
	Discount   float64   `json:"discount" mapstructure:"discount" validate:"gt=0,lte=100"`
	StartDate  time.Time `json:"startDate" mapstructure:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" mapstructure:"endDate" validate:"required,gtfield=StartDate"`
	Categories []string  `json:"categories" mapstructure:"categories"`
	Active     bool      `json:"active" mapstructure:"active"`
}

func (p Promotion) EntityID() int64     { return p.ID }
func (p Promotion) DisplayName() string { return p.Title }

// RunningAt reports whether the promotion is active and inside its window at t.
func (p Promotion) RunningAt(t time.Time) bool {
	return p.Active && !t.Before(p.StartDate) && !t.After(p.EndDate)
}

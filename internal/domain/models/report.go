package models

import "time"

// InventorySnapshot is a point-in-time aggregate of the catalog.
type InventorySnapshot struct {
	TakenAt         time.Time `bson:"taken_at" json:"taken_at"`
	TotalProducts   int       `bson:"total_products" json:"total_products"`
	TotalUnits      int       `bson:"total_units" json:"total_units"`
	LowStockCount   int       `bson:"low_stock_count" json:"low_stock_count"`
	OutOfStockCount int       `bson:"out_of_stock_count" json:"out_of_stock_count"`
	InventoryCost   float64   `bson:"inventory_cost" json:"inventory_cost"`
	InventoryValue  float64   `bson:"inventory_value" json:"inventory_value"`
	MovementsIn     int       `bson:"movements_in" json:"movements_in"`
	MovementsOut    int       `bson:"movements_out" json:"movements_out"`
}

// DashboardMetrics are the headline numbers of the dashboard.
type DashboardMetrics struct {
	TotalProducts   int     `json:"total_products"`
	TotalUnits      int     `json:"total_units"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
	InventoryCost   float64 `json:"inventory_cost"`
	InventoryValue  float64 `json:"inventory_value"`
}

// ChartSlice is one segment of a pie chart.
type ChartSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ChartPoint is one day of the stock movement line chart.
type ChartPoint struct {
	Date string `json:"date"`
	In   int    `json:"in"`
	Out  int    `json:"out"`
}

// Dashboard bundles metrics with pre-aggregated chart series.
type Dashboard struct {
	Metrics     DashboardMetrics `json:"metrics"`
	StockStatus []ChartSlice     `json:"stock_status"`
	Categories  []ChartSlice     `json:"categories"`
	Movements   []ChartPoint     `json:"movements"`
}

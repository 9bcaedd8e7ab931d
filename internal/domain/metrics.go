package domain

import "github.com/shopspring/decimal"

// DashboardMetrics are the aggregates shown on the dashboard. Locally they are
// derived from the collections on every read; RemoteMetrics keeps the last
// figures reported by the server.
type DashboardMetrics struct {
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	TotalItems       int             `json:"totalItems"`
	DistributedItems int             `json:"distributedItems"`
	AvailableItems   int             `json:"availableItems"`
}

type RemoteMetrics struct {
	DashboardMetrics
	ActiveDistributions int `json:"activeDistributions"`
}

type Balance struct {
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}

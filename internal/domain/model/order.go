package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostBreakdown maps subteam name to the percentage of the order total it
// carries. When non-empty the percentages sum to 100.
type CostBreakdown map[string]int

// Valid reports whether the breakdown is empty or sums to exactly 100.
func (b CostBreakdown) Valid() bool {
	if len(b) == 0 {
		return true
	}
	sum := 0
	for _, pct := range b {
		if pct < 0 {
			return false
		}
		sum += pct
	}
	return sum == 100
}

// Order describes a purchase request aggregating zero or more items.
type Order struct {
	ID            int64
	HumanID       string
	MeenOrderID   *string
	Name          string
	Vendor        string
	CartURL       *string
	Status        OrderStatus
	TotalCost     decimal.Decimal
	CostVerified  bool
	Comments      *string
	Carrier       *string
	TrackingID    *string
	CostBreakdown CostBreakdown
	UserID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderUpdate carries an order status transition together with optional
// scalar overrides. Nil fields are left untouched, never defaulted.
type OrderUpdate struct {
	Status        OrderStatus
	TotalCost     *decimal.Decimal
	CostVerified  *bool
	Carrier       *string
	TrackingID    *string
	MeenOrderID   *string
	Comments      *string
	CostBreakdown CostBreakdown
}

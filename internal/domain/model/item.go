package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single line entry within an order, or a standalone inventory
// record when OrderID is nil.
type Item struct {
	ID          int64
	HumanID     string
	OrderID     *int64
	Name        string
	Vendor      string
	Quantity    int
	Price       decimal.Decimal
	Status      ItemStatus
	PartNumber  *string
	Link        *string
	Notes       *string
	InternalSKU *string
	Stock       *int
	Location    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemUpdate carries optional scalar overrides for an item. Nil fields are
// left untouched.
type ItemUpdate struct {
	Name        *string
	Vendor      *string
	Quantity    *int
	Price       *decimal.Decimal
	PartNumber  *string
	Link        *string
	Notes       *string
	InternalSKU *string
	Stock       *int
	Location    *string
}

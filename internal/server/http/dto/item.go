package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemRequest describes a standalone inventory record.
type InventoryItemRequest struct {
	Name        string          `json:"name"`
	Vendor      string          `json:"vendor"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	PartNumber  *string         `json:"partNumber,omitempty"`
	Link        *string         `json:"link,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	InternalSKU *string         `json:"internalSku,omitempty"`
	Stock       *int            `json:"stock,omitempty"`
	Location    *string         `json:"location,omitempty"`
}

// ItemStatusRequest carries an item status transition.
type ItemStatusRequest struct {
	Status string `json:"status"`
}

// ItemUpdateRequest carries optional scalar overrides for an item.
type ItemUpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	Vendor      *string          `json:"vendor,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PartNumber  *string          `json:"partNumber,omitempty"`
	Link        *string          `json:"link,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	InternalSKU *string          `json:"internalSku,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Location    *string          `json:"location,omitempty"`
}

// ItemResponse is the JSON shape of an item.
type ItemResponse struct {
	ID          int64           `json:"id"`
	HumanID     string          `json:"humanReadableId"`
	OrderID     *int64          `json:"orderId,omitempty"`
	Name        string          `json:"name"`
	Vendor      string          `json:"vendor"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	PartNumber  *string         `json:"partNumber,omitempty"`
	Link        *string         `json:"link,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	InternalSKU *string         `json:"internalSku,omitempty"`
	Stock       *int            `json:"stock,omitempty"`
	Location    *string         `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

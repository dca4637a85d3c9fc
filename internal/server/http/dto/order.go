package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreateRequest describes a new purchase order with its line items.
type OrderCreateRequest struct {
	Name          string             `json:"name"`
	Vendor        string             `json:"vendor"`
	CartURL       *string            `json:"cartUrl,omitempty"`
	Comments      *string            `json:"comments,omitempty"`
	CostBreakdown map[string]int     `json:"costBreakdown,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemRequest is a line item inside an order creation payload.
type OrderItemRequest struct {
	Name       string          `json:"name"`
	Vendor     string          `json:"vendor"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	PartNumber *string         `json:"partNumber,omitempty"`
	Link       *string         `json:"link,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
}

// OrderStatusRequest carries a status transition plus optional overrides.
// Absent fields leave the stored values untouched.
type OrderStatusRequest struct {
	Status        string           `json:"status"`
	TotalCost     *decimal.Decimal `json:"totalCost,omitempty"`
	CostVerified  *bool            `json:"costVerified,omitempty"`
	Carrier       *string          `json:"carrier,omitempty"`
	TrackingID    *string          `json:"trackingId,omitempty"`
	MeenOrderID   *string          `json:"meenOrderId,omitempty"`
	Comments      *string          `json:"comments,omitempty"`
	CostBreakdown map[string]int   `json:"costBreakdown,omitempty"`
}

// OrderResponse is the JSON shape of an order.
type OrderResponse struct {
	ID            int64           `json:"id"`
	HumanID       string          `json:"humanReadableId"`
	MeenOrderID   *string         `json:"meenOrderId,omitempty"`
	Name          string          `json:"name"`
	Vendor        string          `json:"vendor"`
	CartURL       *string         `json:"cartUrl,omitempty"`
	Status        string          `json:"status"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	CostVerified  bool            `json:"costVerified"`
	Comments      *string         `json:"comments,omitempty"`
	Carrier       *string         `json:"carrier,omitempty"`
	TrackingID    *string         `json:"trackingId,omitempty"`
	CostBreakdown map[string]int  `json:"costBreakdown,omitempty"`
	UserID        int64           `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// OrderDetailResponse bundles an order with its items and documents.
type OrderDetailResponse struct {
	Order     OrderResponse      `json:"order"`
	Items     []ItemResponse     `json:"items"`
	Documents []DocumentResponse `json:"documents"`
}

// SubteamSpendResponse reports committed spend per subteam.
type SubteamSpendResponse struct {
	Subteams map[string]decimal.Decimal `json:"subteams"`
}

package dto

import "time"

// DocumentRequest attaches file metadata to an order. The bytes themselves
// live in external blob storage.
type DocumentRequest struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DocumentResponse is the JSON shape of an attached document.
type DocumentResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

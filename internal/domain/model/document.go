package model

import "time"

// DocumentKind distinguishes supporting documents from receipts.
type DocumentKind string

const (
	DocumentKindSupporting DocumentKind = "SUPPORTING"
	DocumentKindReceipt    DocumentKind = "RECEIPT"
)

// ParseDocumentKind validates a raw document kind.
func ParseDocumentKind(raw string) (DocumentKind, bool) {
	switch DocumentKind(raw) {
	case DocumentKindSupporting, DocumentKindReceipt:
		return DocumentKind(raw), true
	}
	return "", false
}

// Document is metadata for a file attached to an order. The bytes live in
// external blob storage; only the reference is tracked here.
type Document struct {
	ID        int64
	OrderID   int64
	Kind      DocumentKind
	Name      string
	URL       string
	CreatedAt time.Time
}

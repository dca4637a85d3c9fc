package repository

import (
	"context"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

// DocumentRepository tracks file metadata attached to orders.
type DocumentRepository interface {
	Attach(ctx context.Context, doc model.Document) (*model.Document, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Document, error)
}

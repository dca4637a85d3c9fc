package repository

import (
	"context"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

// ItemRepository describes persistence operations with items, both
// order-owned and standalone inventory stock. ApplyStatus performs the
// item-side reconciliation atomically and reports whether the parent order
// archived as a result; the returned order is nil for inventory-only items.
type ItemRepository interface {
	Create(ctx context.Context, item model.Item) (*model.Item, error)
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Item, error)
	ListInventory(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error)
	ApplyStatus(ctx context.Context, id int64, status model.ItemStatus) (*model.Item, *model.Order, bool, error)
	Delete(ctx context.Context, id int64) error
}

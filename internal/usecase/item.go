package usecase

import (
	"context"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/domain/repository"
)

// ItemUseCase encapsulates item lifecycle logic, including standalone
// inventory stock.
type ItemUseCase struct {
	items repository.ItemRepository
}

// NewItemUseCase constructs ItemUseCase.
func NewItemUseCase(items repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{items: items}
}

// CreateInventory registers an item that exists outside any order.
func (u *ItemUseCase) CreateInventory(ctx context.Context, item model.Item) (*model.Item, error) {
	item.OrderID = nil
	if item.Status == "" {
		item.Status = model.ItemStatusToOrder
	}
	if model.ItemStatusIndex(item.Status) < 0 {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.items.Create(ctx, item)
}

// Get fetches a single item.
func (u *ItemUseCase) Get(ctx context.Context, id int64) (*model.Item, error) {
	return u.items.GetByID(ctx, id)
}

// ListInventory returns standalone inventory items.
func (u *ItemUseCase) ListInventory(ctx context.Context) ([]model.Item, error) {
	return u.items.ListInventory(ctx)
}

// UpdateStatus applies an item status change and reconciles the owning
// order. It returns the updated item, the parent order when one exists, and
// whether the change archived the order.
func (u *ItemUseCase) UpdateStatus(ctx context.Context, id int64, status model.ItemStatus) (*model.Item, *model.Order, bool, error) {
	if model.ItemStatusIndex(status) < 0 {
		return nil, nil, false, domainErrors.ErrInvalidStatus
	}
	return u.items.ApplyStatus(ctx, id, status)
}

// Update applies scalar field changes without touching status.
func (u *ItemUseCase) Update(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	return u.items.Update(ctx, id, update)
}

// Delete removes an item. Reconciliation never deletes items on its own.
func (u *ItemUseCase) Delete(ctx context.Context, id int64) error {
	return u.items.Delete(ctx, id)
}

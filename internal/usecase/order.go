package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic. Status updates cascade to
// items through the repository, which applies the reconciliation plan
// atomically.
type OrderUseCase struct {
	orders    repository.OrderRepository
	items     repository.ItemRepository
	documents repository.DocumentRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, items repository.ItemRepository, documents repository.DocumentRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, items: items, documents: documents}
}

// Create registers a new purchase request with its items. An order carries
// either a cart link or at least one item.
func (u *OrderUseCase) Create(ctx context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error) {
	if order.CartURL == nil && len(items) == 0 {
		return nil, nil, domainErrors.ErrOrderWithoutItemsEmpty
	}
	if !order.CostBreakdown.Valid() {
		return nil, nil, domainErrors.ErrInvalidCostBreakdown
	}

	order.Status = model.OrderStatusToOrder
	for i := range items {
		items[i].Status = model.ItemStatusToOrder
	}

	return u.orders.Create(ctx, order, items)
}

// Get returns the order with its items and documents.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, []model.Item, []model.Document, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := u.items.ListByOrder(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	docs, err := u.documents.ListByOrder(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return order, items, docs, nil
}

// List returns every order.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// ListByUser returns orders placed by the user.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// UpdateStatus applies a status transition with optional scalar overrides
// and returns the order and item states after reconciliation.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error) {
	if model.OrderStatusIndex(update.Status) < 0 {
		return nil, nil, domainErrors.ErrInvalidStatus
	}
	if update.CostBreakdown != nil && !update.CostBreakdown.Valid() {
		return nil, nil, domainErrors.ErrInvalidCostBreakdown
	}
	return u.orders.ApplyTransition(ctx, orderID, update)
}

// Delete removes the order together with its items.
func (u *OrderUseCase) Delete(ctx context.Context, id int64) error {
	return u.orders.Delete(ctx, id)
}

// AttachDocument records document metadata against an order.
func (u *OrderUseCase) AttachDocument(ctx context.Context, doc model.Document) (*model.Document, error) {
	if _, err := u.orders.GetByID(ctx, doc.OrderID); err != nil {
		return nil, err
	}
	return u.documents.Attach(ctx, doc)
}

// SubteamSpend aggregates committed spend per subteam from cost breakdowns.
func (u *OrderUseCase) SubteamSpend(ctx context.Context) (map[string]decimal.Decimal, error) {
	return u.orders.SubteamSpend(ctx)
}

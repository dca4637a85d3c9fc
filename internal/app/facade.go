package app

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/domain/repository"
	"github.com/solarteam/purchaseline/internal/usecase"
)

// Dispatcher accepts notifications for background delivery. Enqueue reports
// false when the queue is full.
type Dispatcher interface {
	Enqueue(n *model.Notification) bool
}

// PurchasingFacade is the application surface the HTTP layer talks to. It
// composes the use cases and hangs notification fan-out off status
// transitions: recipients are computed after the transaction commits and
// handed to the dispatcher, and any failure there is logged and dropped
// without affecting the response.
type PurchasingFacade struct {
	auth       *usecase.AuthUseCase
	orders     *usecase.OrderUseCase
	items      *usecase.ItemUseCase
	policy     *usecase.NotificationPolicy
	tokens     repository.PushTokenRepository
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewPurchasingFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, items *usecase.ItemUseCase, policy *usecase.NotificationPolicy, tokens repository.PushTokenRepository, dispatcher Dispatcher, logger *slog.Logger) *PurchasingFacade {
	return &PurchasingFacade{auth: auth, orders: orders, items: items, policy: policy, tokens: tokens, dispatcher: dispatcher, logger: logger}
}

func (f *PurchasingFacade) Register(ctx context.Context, in usecase.RegisterInput) (string, error) {
	_, token, err := f.auth.Register(ctx, in)
	return token, err
}

func (f *PurchasingFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *PurchasingFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PurchasingFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *PurchasingFacade) CreateOrder(ctx context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error) {
	return f.orders.Create(ctx, order, items)
}

func (f *PurchasingFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *PurchasingFacade) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *PurchasingFacade) OrderDetail(ctx context.Context, id int64) (*model.Order, []model.Item, []model.Document, error) {
	return f.orders.Get(ctx, id)
}

func (f *PurchasingFacade) UpdateOrderStatus(ctx context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error) {
	order, items, err := f.orders.UpdateStatus(ctx, orderID, update)
	if err != nil {
		return nil, nil, err
	}
	f.notifyOrder(ctx, order, update.Status)
	return order, items, nil
}

func (f *PurchasingFacade) DeleteOrder(ctx context.Context, id int64) error {
	return f.orders.Delete(ctx, id)
}

func (f *PurchasingFacade) AttachDocument(ctx context.Context, doc model.Document) (*model.Document, error) {
	return f.orders.AttachDocument(ctx, doc)
}

func (f *PurchasingFacade) SubteamSpend(ctx context.Context) (map[string]decimal.Decimal, error) {
	return f.orders.SubteamSpend(ctx)
}

func (f *PurchasingFacade) CreateInventoryItem(ctx context.Context, item model.Item) (*model.Item, error) {
	return f.items.CreateInventory(ctx, item)
}

func (f *PurchasingFacade) InventoryItems(ctx context.Context) ([]model.Item, error) {
	return f.items.ListInventory(ctx)
}

func (f *PurchasingFacade) UpdateItemStatus(ctx context.Context, id int64, status model.ItemStatus) (*model.Item, error) {
	item, order, archived, err := f.items.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	f.notifyItem(ctx, item, status)
	if archived {
		// The policy keeps archival silent; it decides, not this layer.
		f.notifyOrder(ctx, order, model.OrderStatusArchived)
	}
	return item, nil
}

func (f *PurchasingFacade) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	return f.items.Update(ctx, id, update)
}

func (f *PurchasingFacade) DeleteItem(ctx context.Context, id int64) error {
	return f.items.Delete(ctx, id)
}

func (f *PurchasingFacade) RegisterPushToken(ctx context.Context, token model.PushToken) error {
	_, err := f.tokens.Register(ctx, token)
	return err
}

func (f *PurchasingFacade) UnregisterPushToken(ctx context.Context, token string) error {
	return f.tokens.Unregister(ctx, token)
}

func (f *PurchasingFacade) notifyOrder(ctx context.Context, order *model.Order, status model.OrderStatus) {
	n, err := f.policy.ForOrder(ctx, order, status)
	if err != nil {
		f.logger.Error("compute order notification failed", slog.String("order", order.HumanID), slog.String("error", err.Error()))
		return
	}
	if n == nil {
		return
	}
	if !f.dispatcher.Enqueue(n) {
		f.logger.Warn("notification queue full, dropping", slog.String("order", order.HumanID))
	}
}

func (f *PurchasingFacade) notifyItem(ctx context.Context, item *model.Item, status model.ItemStatus) {
	n, err := f.policy.ForItem(ctx, item, status)
	if err != nil {
		f.logger.Error("compute item notification failed", slog.String("item", item.HumanID), slog.String("error", err.Error()))
		return
	}
	if n == nil {
		return
	}
	if !f.dispatcher.Enqueue(n) {
		f.logger.Warn("notification queue full, dropping", slog.String("item", item.HumanID))
	}
}

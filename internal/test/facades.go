package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, usecase.RegisterInput) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
	UserByIDFn     func(context.Context, int64) (*model.User, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (s AuthFacadeStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserByIDFn != nil {
		return s.UserByIDFn(ctx, id)
	}
	return &model.User{ID: id, Role: model.RoleOperations, Subteam: "electrical"}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, model.Order, []model.Item) (*model.Order, []model.Item, error)
	OrdersFn       func(context.Context) ([]model.Order, error)
	OrdersByUserFn func(context.Context, int64) ([]model.Order, error)
	DetailFn       func(context.Context, int64) (*model.Order, []model.Item, []model.Document, error)
	UpdateStatusFn func(context.Context, int64, model.OrderUpdate) (*model.Order, []model.Item, error)
	DeleteFn       func(context.Context, int64) error
	AttachFn       func(context.Context, model.Document) (*model.Document, error)
	SpendFn        func(context.Context) (map[string]decimal.Decimal, error)
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, items)
	}
	order.ID = 1
	order.Status = model.OrderStatusToOrder
	return &order, items, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{{ID: 1, Name: "resistors"}}, nil
}

func (s OrderFacadeStub) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersByUserFn != nil {
		return s.OrdersByUserFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

func (s OrderFacadeStub) OrderDetail(ctx context.Context, id int64) (*model.Order, []model.Item, []model.Document, error) {
	if s.DetailFn != nil {
		return s.DetailFn(ctx, id)
	}
	return &model.Order{ID: id}, nil, nil, nil
}

func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, update)
	}
	return &model.Order{ID: orderID, Status: update.Status}, nil, nil
}

func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s OrderFacadeStub) AttachDocument(ctx context.Context, doc model.Document) (*model.Document, error) {
	if s.AttachFn != nil {
		return s.AttachFn(ctx, doc)
	}
	doc.ID = 1
	return &doc, nil
}

func (s OrderFacadeStub) SubteamSpend(ctx context.Context) (map[string]decimal.Decimal, error) {
	if s.SpendFn != nil {
		return s.SpendFn(ctx)
	}
	return map[string]decimal.Decimal{}, nil
}

// ItemFacadeStub simulates item endpoints behaviour.
type ItemFacadeStub struct {
	CreateFn       func(context.Context, model.Item) (*model.Item, error)
	InventoryFn    func(context.Context) ([]model.Item, error)
	UpdateStatusFn func(context.Context, int64, model.ItemStatus) (*model.Item, error)
	UpdateFn       func(context.Context, int64, model.ItemUpdate) (*model.Item, error)
	DeleteFn       func(context.Context, int64) error
}

func (s ItemFacadeStub) CreateInventoryItem(ctx context.Context, item model.Item) (*model.Item, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, item)
	}
	item.ID = 1
	return &item, nil
}

func (s ItemFacadeStub) InventoryItems(ctx context.Context) ([]model.Item, error) {
	if s.InventoryFn != nil {
		return s.InventoryFn(ctx)
	}
	return []model.Item{{ID: 1, Name: "stock"}}, nil
}

func (s ItemFacadeStub) UpdateItemStatus(ctx context.Context, id int64, status model.ItemStatus) (*model.Item, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return &model.Item{ID: id, Status: status}, nil
}

func (s ItemFacadeStub) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return &model.Item{ID: id}, nil
}

func (s ItemFacadeStub) DeleteItem(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// PushFacadeStub simulates push token endpoints behaviour.
type PushFacadeStub struct {
	RegisterFn   func(context.Context, model.PushToken) error
	UnregisterFn func(context.Context, string) error
}

func (s PushFacadeStub) RegisterPushToken(ctx context.Context, token model.PushToken) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, token)
	}
	return nil
}

func (s PushFacadeStub) UnregisterPushToken(ctx context.Context, token string) error {
	if s.UnregisterFn != nil {
		return s.UnregisterFn(ctx, token)
	}
	return nil
}

// PurchasingFacadeStub aggregates facade dependencies for HTTP layer tests.
type PurchasingFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ItemFacadeStub
	PushFacadeStub
}

package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error)
	Orders(ctx context.Context) ([]model.Order, error)
	OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	OrderDetail(ctx context.Context, id int64) (*model.Order, []model.Item, []model.Document, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error)
	DeleteOrder(ctx context.Context, id int64) error
	AttachDocument(ctx context.Context, doc model.Document) (*model.Document, error)
	SubteamSpend(ctx context.Context) (map[string]decimal.Decimal, error)
}

// ItemFacade encapsulates item operations exposed via HTTP.
type ItemFacade interface {
	CreateInventoryItem(ctx context.Context, item model.Item) (*model.Item, error)
	InventoryItems(ctx context.Context) ([]model.Item, error)
	UpdateItemStatus(ctx context.Context, id int64, status model.ItemStatus) (*model.Item, error)
	UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

// PushFacade manages device push token registrations.
type PushFacade interface {
	RegisterPushToken(ctx context.Context, token model.PushToken) error
	UnregisterPushToken(ctx context.Context, token string) error
}

// PurchasingFacade aggregates the full set of operations used across handlers.
type PurchasingFacade interface {
	AuthFacade
	OrderFacade
	ItemFacade
	PushFacade
}

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

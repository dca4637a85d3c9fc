package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their
// items. ApplyTransition runs the whole reconciliation inside one
// transaction: the order snapshot is read once, the cascade is planned, and
// either every planned write lands or none does.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ApplyTransition(ctx context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error)
	Delete(ctx context.Context, id int64) error
	SubteamSpend(ctx context.Context) (map[string]decimal.Decimal, error)
}

package repository

import (
	"context"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

// PushTokenRepository describes persistence for mobile push registrations.
type PushTokenRepository interface {
	Register(ctx context.Context, token model.PushToken) (*model.PushToken, error)
	Unregister(ctx context.Context, token string) error
	ListByUsers(ctx context.Context, userIDs []int64) ([]model.PushToken, error)
}

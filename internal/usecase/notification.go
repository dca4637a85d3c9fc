package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/domain/repository"
)

// NotificationPolicy computes who gets alerted on a status transition and
// what the message says. It never delivers anything itself, and it is
// recomputed on every call: subteam membership and roles change between
// transitions, so results must not be cached.
type NotificationPolicy struct {
	users  repository.UserRepository
	orders repository.OrderRepository
}

// NewNotificationPolicy constructs NotificationPolicy.
func NewNotificationPolicy(users repository.UserRepository, orders repository.OrderRepository) *NotificationPolicy {
	return &NotificationPolicy{users: users, orders: orders}
}

// ForOrder computes the fan-out for an order transition. Archival is silent:
// a nil notification with nil error means nobody gets alerted.
func (p *NotificationPolicy) ForOrder(ctx context.Context, order *model.Order, status model.OrderStatus) (*model.Notification, error) {
	if status == model.OrderStatusArchived {
		return nil, nil
	}

	owner, err := p.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}

	recipients := map[int64]struct{}{owner.ID: {}}
	teammates, err := p.users.ListBySubteam(ctx, owner.Subteam)
	if err != nil {
		return nil, err
	}
	for _, member := range teammates {
		if member.ID == owner.ID {
			continue
		}
		switch member.Role {
		case model.RoleFinance:
			if status == model.OrderStatusPlaced {
				recipients[member.ID] = struct{}{}
			}
		case model.RoleOperations:
			if status == model.OrderStatusShipped || status == model.OrderStatusDelivered {
				recipients[member.ID] = struct{}{}
			}
		}
	}

	return &model.Notification{
		UserIDs: sortedIDs(recipients),
		Title:   "Order update",
		Body:    fmt.Sprintf("%s %s", order.Name, orderStatusPhrase(status)),
		Data: model.NotificationData{
			Type:            model.NotificationTypeOrder,
			EntityID:        order.ID,
			Status:          string(status),
			HumanReadableID: order.HumanID,
		},
	}, nil
}

// ForItem computes the fan-out for an item transition. Unlike orders, there
// is no suppression for the final state: a pickup still alerts the owner.
// Inventory-only items have no audience.
func (p *NotificationPolicy) ForItem(ctx context.Context, item *model.Item, status model.ItemStatus) (*model.Notification, error) {
	if item.OrderID == nil {
		return nil, nil
	}

	order, err := p.orders.GetByID(ctx, *item.OrderID)
	if err != nil {
		return nil, err
	}
	owner, err := p.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}

	recipients := map[int64]struct{}{owner.ID: {}}
	if status == model.ItemStatusShipped || status == model.ItemStatusDelivered {
		teammates, err := p.users.ListBySubteam(ctx, owner.Subteam)
		if err != nil {
			return nil, err
		}
		for _, member := range teammates {
			if member.ID != owner.ID && member.Role == model.RoleOperations {
				recipients[member.ID] = struct{}{}
			}
		}
	}

	return &model.Notification{
		UserIDs: sortedIDs(recipients),
		Title:   "Item update",
		Body:    fmt.Sprintf("%s %s", item.Name, itemStatusPhrase(status)),
		Data: model.NotificationData{
			Type:            model.NotificationTypeItem,
			EntityID:        item.ID,
			Status:          string(status),
			HumanReadableID: item.HumanID,
		},
	}, nil
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func orderStatusPhrase(status model.OrderStatus) string {
	switch status {
	case model.OrderStatusToOrder:
		return "is ready to be ordered"
	case model.OrderStatusPlaced:
		return "has been placed"
	case model.OrderStatusMeenHold:
		return "is on hold at stores"
	case model.OrderStatusProcessed:
		return "has been processed"
	case model.OrderStatusShipped:
		return "has been shipped"
	case model.OrderStatusAwaitingPickup:
		return "is awaiting pickup"
	case model.OrderStatusPartial:
		return "has been partially delivered"
	case model.OrderStatusDelivered:
		return "has been delivered"
	}
	return "has been updated"
}

func itemStatusPhrase(status model.ItemStatus) string {
	switch status {
	case model.ItemStatusToOrder:
		return "is ready to be ordered"
	case model.ItemStatusPlaced:
		return "has been placed"
	case model.ItemStatusProcessed:
		return "has been processed"
	case model.ItemStatusShipped:
		return "has been shipped"
	case model.ItemStatusDelivered:
		return "has been delivered"
	case model.ItemStatusPickedUp:
		return "has been picked up"
	}
	return "has been updated"
}

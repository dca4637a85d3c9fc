// Package reconcile contains the pure planning half of order/item status
// synchronization. Functions here take snapshots and return intended
// mutations; the storage layer applies them inside one transaction.
package reconcile

import "github.com/solarteam/purchaseline/internal/domain/model"

// Direction of an order transition relative to its current status.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

// OrderPlan lists the item mutations an order status change requires.
// An empty ItemIDs slice means the order-side mutation stands alone.
type OrderPlan struct {
	Direction  Direction
	ItemStatus model.ItemStatus
	ItemIDs    []int64
}

// PlanOrderTransition computes which items must move when an order is set to
// target. Items is the full snapshot of the order's items at decision time.
//
// PARTIAL is a signal state and never cascades. A backward transition levels
// every item onto the mapped status. A forward (or equal) transition moves
// only items strictly behind the target ordinal, and never touches an item
// already picked up.
func PlanOrderTransition(current, target model.OrderStatus, items []model.Item) OrderPlan {
	currentIdx := model.OrderStatusIndex(current)
	targetIdx := model.OrderStatusIndex(target)

	plan := OrderPlan{Direction: DirectionForward}
	if targetIdx < currentIdx {
		plan.Direction = DirectionBackward
	}

	if target == model.OrderStatusPartial {
		return plan
	}

	mapped, ok := model.MapOrderStatusToItemStatus(target)
	if !ok {
		return plan
	}
	plan.ItemStatus = mapped

	for _, item := range items {
		switch plan.Direction {
		case DirectionBackward:
			plan.ItemIDs = append(plan.ItemIDs, item.ID)
		case DirectionForward:
			if item.Status == model.ItemStatusPickedUp {
				continue
			}
			if model.ItemStatusIndex(item.Status) < targetIdx {
				plan.ItemIDs = append(plan.ItemIDs, item.ID)
			}
		}
	}

	return plan
}

// ShouldArchive reports whether an item status change completes the order.
// Siblings is the snapshot of all items under the order with the change
// already applied. Only an all-picked-up order archives.
func ShouldArchive(target model.ItemStatus, siblings []model.Item) bool {
	if target != model.ItemStatusPickedUp || len(siblings) == 0 {
		return false
	}
	for _, item := range siblings {
		if item.Status != model.ItemStatusPickedUp {
			return false
		}
	}
	return true
}

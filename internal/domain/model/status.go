package model

// OrderStatus describes the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusToOrder        OrderStatus = "TO_ORDER"
	OrderStatusPlaced         OrderStatus = "PLACED"
	OrderStatusMeenHold       OrderStatus = "MEEN_HOLD"
	OrderStatusProcessed      OrderStatus = "PROCESSED"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusAwaitingPickup OrderStatus = "AWAITING_PICKUP"
	OrderStatusPartial        OrderStatus = "PARTIAL"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusArchived       OrderStatus = "ARCHIVED"
)

// ItemStatus describes the fulfillment lifecycle of a single item.
type ItemStatus string

const (
	ItemStatusToOrder   ItemStatus = "TO_ORDER"
	ItemStatusPlaced    ItemStatus = "PLACED"
	ItemStatusProcessed ItemStatus = "PROCESSED"
	ItemStatusShipped   ItemStatus = "SHIPPED"
	ItemStatusDelivered ItemStatus = "DELIVERED"
	ItemStatusPickedUp  ItemStatus = "PICKED_UP"
)

// Both lattices share one ordinal scale so item and order positions are
// directly comparable. Item statuses occupy a strict subset of the slots.
var orderStatusOrdinals = map[OrderStatus]int{
	OrderStatusToOrder:        0,
	OrderStatusPlaced:         1,
	OrderStatusMeenHold:       2,
	OrderStatusProcessed:      3,
	OrderStatusShipped:        4,
	OrderStatusAwaitingPickup: 5,
	OrderStatusPartial:        6,
	OrderStatusDelivered:      7,
	OrderStatusArchived:       8,
}

var itemStatusOrdinals = map[ItemStatus]int{
	ItemStatusToOrder:   0,
	ItemStatusPlaced:    1,
	ItemStatusProcessed: 3,
	ItemStatusShipped:   4,
	ItemStatusDelivered: 7,
	ItemStatusPickedUp:  8,
}

// OrderStatusIndex returns the ordinal of the status, or -1 when unknown.
func OrderStatusIndex(status OrderStatus) int {
	if idx, ok := orderStatusOrdinals[status]; ok {
		return idx
	}
	return -1
}

// ItemStatusIndex returns the ordinal of the status, or -1 when unknown.
func ItemStatusIndex(status ItemStatus) int {
	if idx, ok := itemStatusOrdinals[status]; ok {
		return idx
	}
	return -1
}

// ParseOrderStatus validates a raw status value from a request.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(raw)
	_, ok := orderStatusOrdinals[status]
	return status, ok
}

// ParseItemStatus validates a raw status value from a request.
func ParseItemStatus(raw string) (ItemStatus, bool) {
	status := ItemStatus(raw)
	_, ok := itemStatusOrdinals[status]
	return status, ok
}

// MapOrderStatusToItemStatus returns the item status an order status cascades
// to. Order statuses without an item counterpart collapse onto the nearest
// preceding item status; the bool is false only for unknown input.
func MapOrderStatusToItemStatus(status OrderStatus) (ItemStatus, bool) {
	switch status {
	case OrderStatusToOrder:
		return ItemStatusToOrder, true
	case OrderStatusPlaced, OrderStatusMeenHold:
		return ItemStatusPlaced, true
	case OrderStatusProcessed:
		return ItemStatusProcessed, true
	case OrderStatusShipped, OrderStatusAwaitingPickup, OrderStatusPartial:
		return ItemStatusShipped, true
	case OrderStatusDelivered:
		return ItemStatusDelivered, true
	case OrderStatusArchived:
		return ItemStatusPickedUp, true
	default:
		return "", false
	}
}

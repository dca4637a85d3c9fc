package model

// NotificationData is the structured payload clients use for routing.
type NotificationData struct {
	Type            string `json:"type"`
	EntityID        int64  `json:"entityId"`
	Status          string `json:"status"`
	HumanReadableID string `json:"humanReadableId"`
}

const (
	NotificationTypeOrder = "order"
	NotificationTypeItem  = "item"
)

// Notification is a computed fan-out: the recipients and the message to
// deliver. Delivery is somebody else's job.
type Notification struct {
	UserIDs []int64
	Title   string
	Body    string
	Data    NotificationData
}

package model

import "time"

// PushToken is a mobile push registration owned by a user.
type PushToken struct {
	ID        int64
	Token     string
	UserID    int64
	Platform  string
	DeviceID  string
	CreatedAt time.Time
}

package dto

// PushTokenRequest registers a device push token for the current user.
type PushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
	DeviceID string `json:"deviceId"`
}

// PushUnregisterRequest removes a previously registered token.
type PushUnregisterRequest struct {
	Token string `json:"token"`
}

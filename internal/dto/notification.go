package dto

import (
	"encoding/json"
	"time"
)

// NotificationResponse is the public shape of a notification.
type NotificationResponse struct {
	ID        uint            `json:"id"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationListRequest filters the caller's notifications.
type NotificationListRequest struct {
	PaginationRequest
	UnreadOnly bool `form:"unread_only"`
}

package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notification kinds.
const (
	NotificationLeaveReviewed = "leave_reviewed"
	NotificationSwapReviewed  = "swap_reviewed"
	NotificationSwapRequested = "swap_requested"
	NotificationTaskAssigned  = "task_assigned"
)

// Notification maps to the notifications table. Payload holds kind-specific
// fields (request id, decision, task title) as JSON.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	Kind      string         `gorm:"type:varchar(30);not null" json:"kind"`
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name.
func (Notification) TableName() string { return "notifications" }

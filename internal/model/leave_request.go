package model

import "time"

// Leave request statuses. pending is initial; approved and rejected are
// terminal. reviewed_at is set exactly when status leaves pending.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRequest maps to the leave_requests table.
type LeaveRequest struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RequesterID   uint       `gorm:"not null" json:"requester_id"`
	LeaveType     string     `gorm:"type:varchar(20);not null" json:"leave_type"`
	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time  `gorm:"type:date;not null" json:"end_date"`
	DurationDays  int        `gorm:"not null;default:0" json:"duration_days"`
	Reason        string     `gorm:"type:text" json:"reason,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewerID    *uint      `json:"reviewer_id,omitempty"`
	ReviewerNotes string     `gorm:"type:text" json:"reviewer_notes,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Reviewer  *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName sets the table name.
func (LeaveRequest) TableName() string { return "leave_requests" }

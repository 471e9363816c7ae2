package model

import "time"

// Swap request statuses. pending → approved|rejected|cancelled; approved →
// completed once the reassignment is applied (always in the same transaction,
// so approved is never observable through the API), or cancelled
// administratively. rejected, completed and cancelled are terminal.
const (
	SwapStatusPending   = "pending"
	SwapStatusApproved  = "approved"
	SwapStatusRejected  = "rejected"
	SwapStatusCompleted = "completed"
	SwapStatusCancelled = "cancelled"
)

// Swap assignment types.
const (
	SwapAssignmentTask = "task"
	SwapAssignmentExam = "exam"
)

// SwapRequest maps to the swap_requests table: a request to transfer
// ownership of a task or exam-proctoring slot from requester to target.
// proposed_assignment_id, when set, names a target-owned assignment handed
// back to the requester on approval (a two-way swap).
type SwapRequest struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	RequesterID          uint       `gorm:"not null" json:"requester_id"`
	TargetID             uint       `gorm:"not null" json:"target_id"`
	AssignmentType       string     `gorm:"type:varchar(10);not null;default:'task'" json:"assignment_type"`
	OriginalAssignmentID uint       `gorm:"not null" json:"original_assignment_id"`
	ProposedAssignmentID *uint      `json:"proposed_assignment_id,omitempty"`
	Reason               string     `gorm:"type:text" json:"reason,omitempty"`
	Status               string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewerID           *uint      `json:"reviewer_id,omitempty"`
	ReviewerNotes        string     `gorm:"type:text" json:"reviewer_notes,omitempty"`
	CreatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	ReviewedAt           *time.Time `json:"reviewed_at,omitempty"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Target    *User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
	Reviewer  *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName sets the table name.
func (SwapRequest) TableName() string { return "swap_requests" }

// IsTerminal reports whether no further transition is allowed from the
// request's current status.
func (s *SwapRequest) IsTerminal() bool {
	switch s.Status {
	case SwapStatusRejected, SwapStatusCompleted, SwapStatusCancelled:
		return true
	}
	return false
}

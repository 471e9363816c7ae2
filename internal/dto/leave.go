package dto

import "time"

// LeaveResponse is the public shape of a leave request.
type LeaveResponse struct {
	ID            uint          `json:"id"`
	RequesterID   uint          `json:"requester_id"`
	LeaveType     string        `json:"leave_type"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	DurationDays  int           `json:"duration_days"`
	Reason        string        `json:"reason,omitempty"`
	Status        string        `json:"status"`
	ReviewerID    *uint         `json:"reviewer_id,omitempty"`
	ReviewerNotes string        `json:"reviewer_notes,omitempty"`
	ReviewedAt    *time.Time    `json:"reviewed_at,omitempty"`
	Requester     *UserResponse `json:"requester,omitempty"`
}

// CreateLeaveRequest files a leave request for the calling TA.
type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=sick personal conference other"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"     binding:"omitempty,max=1000"`
}

// ReviewLeaveRequest records the reviewer decision.
type ReviewLeaveRequest struct {
	Status        string `json:"status"         binding:"required,oneof=approved rejected"`
	ReviewerNotes string `json:"reviewer_notes" binding:"omitempty,max=1000"`
}

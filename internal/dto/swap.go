package dto

import "time"

// SwapResponse is the public shape of a swap request.
type SwapResponse struct {
	ID                   uint          `json:"id"`
	RequesterID          uint          `json:"requester_id"`
	TargetID             uint          `json:"target_id"`
	AssignmentType       string        `json:"assignment_type"`
	OriginalAssignmentID uint          `json:"original_assignment_id"`
	ProposedAssignmentID *uint         `json:"proposed_assignment_id,omitempty"`
	Reason               string        `json:"reason,omitempty"`
	Status               string        `json:"status"`
	ReviewerID           *uint         `json:"reviewer_id,omitempty"`
	ReviewerNotes        string        `json:"reviewer_notes,omitempty"`
	ReviewedAt           *time.Time    `json:"reviewed_at,omitempty"`
	Requester            *UserResponse `json:"requester,omitempty"`
	Target               *UserResponse `json:"target,omitempty"`
}

// CreateSwapRequest files a swap of one of the caller's assignments to a
// target TA on the same course roster.
type CreateSwapRequest struct {
	TargetID             uint   `json:"target_id"              binding:"required"`
	AssignmentType       string `json:"assignment_type"        binding:"required,oneof=task exam"`
	OriginalAssignmentID uint   `json:"original_assignment_id" binding:"required"`
	ProposedAssignmentID *uint  `json:"proposed_assignment_id"`
	Reason               string `json:"reason"                 binding:"omitempty,max=1000"`
}

// ReviewSwapRequest records the reviewer decision.
type ReviewSwapRequest struct {
	Status        string `json:"status"         binding:"required,oneof=approved rejected"`
	ReviewerNotes string `json:"reviewer_notes" binding:"omitempty,max=1000"`
}

// EligibleTargetsRequest identifies the assignment being swapped.
type EligibleTargetsRequest struct {
	AssignmentID   uint   `form:"assignment_id"   binding:"required"`
	AssignmentType string `form:"assignment_type" binding:"required,oneof=task exam"`
}

// EligibleTargetResponse is one candidate TA for a swap, with the real
// workload drawn from active course assignments.
type EligibleTargetResponse struct {
	User               UserResponse `json:"user"`
	ActiveHoursPerWeek int          `json:"active_hours_per_week"`
}

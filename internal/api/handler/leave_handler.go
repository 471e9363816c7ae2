package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// LeaveHandler serves leave request endpoints.
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler creates the LeaveHandler.
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// Create files a leave request for the caller.
// POST /api/v1/leaves
func (h *LeaveHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid leave payload")
		return
	}

	leave, err := h.leaveSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.Created(c, leave)
}

// Get returns one leave request.
// GET /api/v1/leaves/:id
func (h *LeaveHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	leave, err := h.leaveSvc.GetByID(c.Request.Context(), id, callerID, callerRole)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, leave)
}

// Review approves or rejects a pending leave request.
// PUT /api/v1/leaves/:id/review
func (h *LeaveHandler) Review(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid review payload")
		return
	}

	leave, err := h.leaveSvc.Review(c.Request.Context(), id, &req, reviewerID)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, leave)
}

// Cancel withdraws the caller's pending leave request.
// DELETE /api/v1/leaves/:id
func (h *LeaveHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.leaveSvc.Cancel(c.Request.Context(), id, userID); err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, nil)
}

// MyLeaves returns the caller's leave requests.
// GET /api/v1/leaves/my
func (h *LeaveHandler) MyLeaves(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	leaves, err := h.leaveSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, gin.H{"list": leaves})
}

// Pending returns the review queue.
// GET /api/v1/leaves/pending
func (h *LeaveHandler) Pending(c *gin.Context) {
	leaves, err := h.leaveSvc.ListPending(c.Request.Context())
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, gin.H{"list": leaves})
}

func (h *LeaveHandler) handleLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, 15101, "leave request not found")
	case errors.Is(err, service.ErrLeaveDateRange):
		response.BadRequest(c, 15102, "invalid leave date range")
	case errors.Is(err, service.ErrLeaveAlreadyReviewed):
		response.Conflict(c, 15103, "leave request already reviewed")
	case errors.Is(err, service.ErrLeaveNotOwner):
		response.Forbidden(c, 10003, "leave request belongs to another user")
	case errors.Is(err, service.ErrLeaveSelfReview):
		response.BadRequest(c, 15104, "cannot review own leave request")
	case errors.Is(err, service.ErrTooManyPending):
		response.BadRequest(c, 15105, "too many pending requests")
	default:
		response.InternalError(c)
	}
}

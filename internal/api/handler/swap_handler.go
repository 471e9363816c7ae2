package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// SwapHandler serves swap request endpoints.
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler creates the SwapHandler.
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// Create files a swap request for one of the caller's assignments.
// POST /api/v1/swaps
func (h *SwapHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid swap payload")
		return
	}

	swap, err := h.swapSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleSwapError(c, err, false)
		return
	}

	response.Created(c, swap)
}

// Get returns one swap request.
// GET /api/v1/swaps/:id
func (h *SwapHandler) Get(c *gin.Context) {
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

	swap, err := h.swapSvc.GetByID(c.Request.Context(), id, callerID, callerRole)
	if err != nil {
		h.handleSwapError(c, err, false)
		return
	}

	response.OK(c, swap)
}

// Review approves or rejects a pending swap; approval applies the transfer.
// PUT /api/v1/swaps/:id/review
func (h *SwapHandler) Review(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "invalid review payload")
		return
	}

	swap, err := h.swapSvc.Review(c.Request.Context(), id, &req, reviewerID)
	if err != nil {
		h.handleSwapError(c, err, true)
		return
	}

	response.OK(c, swap)
}

// Cancel withdraws the caller's pending swap request.
// DELETE /api/v1/swaps/:id
func (h *SwapHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.swapSvc.Cancel(c.Request.Context(), id, userID); err != nil {
		h.handleSwapError(c, err, false)
		return
	}

	response.OK(c, nil)
}

// MySwaps returns swap requests where the caller is requester or target.
// GET /api/v1/swaps/my
func (h *SwapHandler) MySwaps(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	swaps, err := h.swapSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleSwapError(c, err, false)
		return
	}

	response.OK(c, gin.H{"list": swaps})
}

// Pending returns the review queue.
// GET /api/v1/swaps/pending
func (h *SwapHandler) Pending(c *gin.Context) {
	swaps, err := h.swapSvc.ListPending(c.Request.Context())
	if err != nil {
		h.handleSwapError(c, err, false)
		return
	}

	response.OK(c, gin.H{"list": swaps})
}

// EligibleTargets lists the TAs the caller may swap an assignment to.
// GET /api/v1/swaps/eligible-targets
func (h *SwapHandler) EligibleTargets(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.EligibleTargetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "invalid target filters")
		return
	}

	targets, err := h.swapSvc.ListEligibleTargets(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleSwapError(c, err, false)
		return
	}

	response.OK(c, gin.H{"list": targets})
}

// handleSwapError maps swap sentinels onto HTTP. Eligibility and ownership
// failures are 400s when filing a request but 409s during review, where they
// mean the world changed after the request was filed.
func (h *SwapHandler) handleSwapError(c *gin.Context, err error, reviewing bool) {
	switch {
	case errors.Is(err, service.ErrSwapNotFound):
		response.NotFound(c, 16101, "swap request not found")
	case errors.Is(err, service.ErrSwapAssignmentNotFound):
		response.BadRequest(c, 16102, "assignment not found")
	case errors.Is(err, service.ErrSwapNotOwner):
		if reviewing {
			response.Conflict(c, 16103, "assignment no longer owned by requester")
		} else {
			response.Forbidden(c, 16103, "assignment not owned by requester")
		}
	case errors.Is(err, service.ErrSwapSelfTarget):
		response.BadRequest(c, 16104, "cannot swap with yourself")
	case errors.Is(err, service.ErrSwapTargetNotFound):
		response.BadRequest(c, 16105, "swap target not found")
	case errors.Is(err, service.ErrSwapTargetIneligible):
		if reviewing {
			response.Conflict(c, 16106, "swap target no longer on the course roster")
		} else {
			response.BadRequest(c, 16106, "swap target not on the course roster")
		}
	case errors.Is(err, service.ErrSwapProposedNotOwned):
		response.BadRequest(c, 16107, "proposed assignment not owned by target")
	case errors.Is(err, service.ErrSwapNotPending):
		response.Conflict(c, 16108, "swap request is not pending")
	case errors.Is(err, service.ErrTooManyPending):
		response.BadRequest(c, 16109, "too many pending requests")
	default:
		response.InternalError(c)
	}
}

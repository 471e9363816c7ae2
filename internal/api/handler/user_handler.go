package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	pkgerrors "github.com/kbc0/TA-Management-System-sub000/pkg/errors"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// UserHandler serves user management endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates the UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create creates a user with a generated temporary password.
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid user payload")
		return
	}

	result, err := h.userSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.Created(c, result)
}

// Get returns one user.
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// List returns a filtered user page.
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "invalid list filters")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// Update applies a partial profile update.
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
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

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid user payload")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), id, &req, callerID, callerRole)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// Delete soft-deletes a user.
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// AssignRole changes a user's role.
// PUT /api/v1/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid role payload")
		return
	}

	if err := h.userSvc.AssignRole(c.Request.Context(), id, &req, callerID); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResetPassword issues a new temporary password for a user.
// POST /api/v1/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.ResetPassword(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12101, "user not found")
	case errors.Is(err, service.ErrInstitutionIDExists):
		response.BadRequest(c, 12102, "institution id already registered")
	case errors.Is(err, service.ErrEmailExists):
		response.BadRequest(c, 12103, "email already registered")
	case errors.Is(err, service.ErrUserSelfRoleChange):
		response.BadRequest(c, 12104, "cannot change own role")
	case errors.Is(err, service.ErrUserSelfDelete):
		response.BadRequest(c, 12105, "cannot delete own account")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "insufficient role")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 12106, "user was modified concurrently, retry")
	default:
		response.InternalError(c)
	}
}

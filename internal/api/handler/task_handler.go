package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// TaskHandler serves task lifecycle endpoints.
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler creates the TaskHandler.
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// Create creates a task, optionally pre-assigned.
// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid task payload")
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.Created(c, task)
}

// Get returns one task.
// GET /api/v1/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// Update applies a partial task update, including reassignment.
// PATCH /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid task payload")
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// SetStatus moves a task through its status table.
// PUT /api/v1/tasks/:id/status
func (h *TaskHandler) SetStatus(c *gin.Context) {
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

	var req dto.SetTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid status payload")
		return
	}

	task, err := h.taskSvc.SetStatus(c.Request.Context(), id, req.Status, callerID, callerRole)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// Delete removes a task.
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListByCourse returns a course's tasks.
// GET /api/v1/courses/:id/tasks
func (h *TaskHandler) ListByCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.taskSvc.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// MyTasks returns the caller's tasks.
// GET /api/v1/tasks/my
func (h *TaskHandler) MyTasks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskSvc.ListByAssignee(c.Request.Context(), userID)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// Upcoming returns the caller's next due tasks.
// GET /api/v1/tasks/upcoming
func (h *TaskHandler) Upcoming(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpcomingTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "invalid limit")
		return
	}

	tasks, err := h.taskSvc.ListUpcoming(c.Request.Context(), userID, req.Limit)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 14101, "task not found")
	case errors.Is(err, service.ErrTaskCourseNotFound):
		response.BadRequest(c, 14102, "course not found")
	case errors.Is(err, service.ErrTaskAssigneeNotFound):
		response.BadRequest(c, 14103, "assignee not found")
	case errors.Is(err, service.ErrTaskStatusTransition):
		response.Conflict(c, 14104, "status transition not allowed")
	case errors.Is(err, service.ErrTaskNotOwnerOrManager):
		response.Forbidden(c, 10003, "only the assignee or staff may update task status")
	default:
		response.InternalError(c)
	}
}

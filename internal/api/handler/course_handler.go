package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	pkgerrors "github.com/kbc0/TA-Management-System-sub000/pkg/errors"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// CourseHandler serves course and TA roster endpoints.
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler creates the CourseHandler.
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Create creates a course.
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid course payload")
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// Get returns one course.
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// List returns a filtered course page.
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "invalid list filters")
		return
	}

	courses, total, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OKPage(c, courses, total, req.GetPage(), req.GetPageSize())
}

// Update applies a partial course update.
// PATCH /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid course payload")
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// AssignTa puts a TA on the course roster.
// POST /api/v1/courses/:id/tas
func (h *CourseHandler) AssignTa(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignTaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid roster payload")
		return
	}

	row, err := h.courseSvc.AssignTa(c.Request.Context(), courseID, &req, callerID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, row)
}

// RemoveTa ends a TA's active roster row.
// DELETE /api/v1/courses/:id/tas/:taId
func (h *CourseHandler) RemoveTa(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taID, ok := parseIDParam(c, "taId")
	if !ok {
		return
	}

	if err := h.courseSvc.RemoveTa(c.Request.Context(), courseID, taID); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListTas returns the active roster of a course.
// GET /api/v1/courses/:id/tas
func (h *CourseHandler) ListTas(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.courseSvc.ListTas(c.Request.Context(), courseID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// MyCourses returns the caller's active course assignments.
// GET /api/v1/courses/my
func (h *CourseHandler) MyCourses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rows, err := h.courseSvc.ListCoursesForTa(c.Request.Context(), userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13101, "course not found")
	case errors.Is(err, service.ErrCourseCodeExists):
		response.BadRequest(c, 13102, "course code already exists for the semester")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.BadRequest(c, 13103, "instructor not found")
	case errors.Is(err, service.ErrTaNotFound):
		response.BadRequest(c, 13104, "ta not found")
	case errors.Is(err, service.ErrNotATa):
		response.BadRequest(c, 13105, "user is not a ta")
	case errors.Is(err, service.ErrTaNotOnCourse):
		response.NotFound(c, 13106, "ta is not on the course roster")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13107, "course was modified concurrently, retry")
	default:
		response.InternalError(c)
	}
}

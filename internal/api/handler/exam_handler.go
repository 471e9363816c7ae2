package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// ExamHandler serves exam and proctoring endpoints.
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler creates the ExamHandler.
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// Create creates an exam with its rooms.
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "invalid exam payload")
		return
	}

	exam, err := h.examSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.Created(c, exam)
}

// Get returns one exam with its rooms.
// GET /api/v1/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exam, err := h.examSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, exam)
}

// ListByCourse returns a course's exams.
// GET /api/v1/courses/:id/exams
func (h *ExamHandler) ListByCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exams, err := h.examSvc.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, gin.H{"list": exams})
}

// AssignProctor sets a room's proctor.
// PUT /api/v1/exams/rooms/:roomId/proctor
func (h *ExamHandler) AssignProctor(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	var req dto.AssignProctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "invalid proctor payload")
		return
	}

	room, err := h.examSvc.AssignProctor(c.Request.Context(), roomID, &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, room)
}

// MyProctoring returns the caller's proctoring assignments.
// GET /api/v1/exams/my-proctoring
func (h *ExamHandler) MyProctoring(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rooms, err := h.examSvc.ListMyProctoring(c.Request.Context(), userID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

func (h *ExamHandler) handleExamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		response.NotFound(c, 17101, "exam not found")
	case errors.Is(err, service.ErrExamRoomNotFound):
		response.NotFound(c, 17102, "exam room not found")
	case errors.Is(err, service.ErrExamCourseNotFound):
		response.BadRequest(c, 17103, "course not found")
	case errors.Is(err, service.ErrExamDateInvalid):
		response.BadRequest(c, 17104, "exam date invalid")
	case errors.Is(err, service.ErrProctorNotEligible):
		response.BadRequest(c, 17105, "proctor not on the course roster")
	default:
		response.InternalError(c)
	}
}

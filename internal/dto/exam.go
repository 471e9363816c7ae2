package dto

import "time"

// ExamRoomResponse is the public shape of an exam room.
type ExamRoomResponse struct {
	ID        uint          `json:"id"`
	ExamID    uint          `json:"exam_id"`
	Room      string        `json:"room"`
	Capacity  int           `json:"capacity"`
	ProctorID *uint         `json:"proctor_id,omitempty"`
	Proctor   *UserResponse `json:"proctor,omitempty"`
}

// ExamResponse is the public shape of an exam.
type ExamResponse struct {
	ID       uint               `json:"id"`
	CourseID uint               `json:"course_id"`
	Name     string             `json:"name"`
	ExamDate time.Time          `json:"exam_date"`
	Duration int                `json:"duration"`
	Rooms    []ExamRoomResponse `json:"rooms,omitempty"`
}

// CreateExamRequest creates an exam with its rooms.
type CreateExamRequest struct {
	CourseID uint                    `json:"course_id" binding:"required"`
	Name     string                  `json:"name"      binding:"required,max=200"`
	ExamDate string                  `json:"exam_date" binding:"required"`
	Duration int                     `json:"duration"  binding:"omitempty,min=0"`
	Rooms    []CreateExamRoomRequest `json:"rooms"     binding:"omitempty,dive"`
}

// CreateExamRoomRequest is one room within a CreateExamRequest.
type CreateExamRoomRequest struct {
	Room      string `json:"room"       binding:"required,max=50"`
	Capacity  int    `json:"capacity"   binding:"omitempty,min=0"`
	ProctorID *uint  `json:"proctor_id"`
}

// AssignProctorRequest sets or replaces a room's proctor.
type AssignProctorRequest struct {
	ProctorID uint `json:"proctor_id" binding:"required"`
}

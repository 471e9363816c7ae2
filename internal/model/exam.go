package model

import "time"

// Exam maps to the exams table.
type Exam struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null" json:"course_id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	ExamDate  time.Time `gorm:"not null" json:"exam_date"`
	Duration  int       `gorm:"not null;default:0" json:"duration"` // minutes
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Course *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Rooms  []ExamRoom `gorm:"foreignKey:ExamID" json:"rooms,omitempty"`
}

// TableName sets the table name.
func (Exam) TableName() string { return "exams" }

// ExamRoom maps to the exam_rooms table. proctor_id is the proctoring
// assignment a swap with assignment_type=exam transfers.
type ExamRoom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ExamID    uint      `gorm:"not null" json:"exam_id"`
	Room      string    `gorm:"type:varchar(50);not null" json:"room"`
	Capacity  int       `gorm:"not null;default:0" json:"capacity"`
	ProctorID *uint     `json:"proctor_id,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Exam    *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	Proctor *User `gorm:"foreignKey:ProctorID" json:"proctor,omitempty"`
}

// TableName sets the table name.
func (ExamRoom) TableName() string { return "exam_rooms" }

package model

import "time"

// Course maps to the courses table. Code is unique per semester.
type Course struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Code         string `gorm:"type:varchar(20);not null"  json:"code"`
	Name         string `gorm:"type:varchar(200);not null" json:"name"`
	Semester     string `gorm:"type:varchar(20);not null"  json:"semester"`
	Department   string `gorm:"type:varchar(100)" json:"department,omitempty"`
	InstructorID uint   `gorm:"not null" json:"instructor_id"`
	VersionedModel

	Instructor *User `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

// TableName sets the table name.
func (Course) TableName() string { return "courses" }

// CourseTA statuses.
const (
	CourseTAStatusActive = "active"
	CourseTAStatusEnded  = "ended"
)

// CourseTA maps to the course_tas table: the registry row linking a TA to a
// course with a weekly hour budget. At most one active row per (course, ta)
// pair; a partial unique index backs the application-level check.
type CourseTA struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CourseID     uint       `gorm:"not null" json:"course_id"`
	TaID         uint       `gorm:"not null" json:"ta_id"`
	HoursPerWeek int        `gorm:"not null;default:0" json:"hours_per_week"`
	StartDate    *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Ta     *User   `gorm:"foreignKey:TaID" json:"ta,omitempty"`
}

// TableName sets the table name.
func (CourseTA) TableName() string { return "course_tas" }

package model

import "time"

// Task statuses.
const (
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"
	TaskStatusCancelled = "cancelled"
)

// Task types.
const (
	TaskTypeGrading     = "grading"
	TaskTypeOfficeHours = "office_hours"
	TaskTypeProctoring  = "proctoring"
	TaskTypeLabSession  = "lab_session"
	TaskTypeOther       = "other"
)

// Task maps to the tasks table. assigned_to is the single source of truth for
// the current owner; task_assignments keeps the append-only history.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	TaskType    string     `gorm:"type:varchar(20);not null;default:'other'" json:"task_type"`
	CourseID    uint       `gorm:"not null" json:"course_id"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Duration    int        `gorm:"not null;default:0" json:"duration"` // minutes
	Status      string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	AssignedTo  *uint      `json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Creator  *User   `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

// TableName sets the table name.
func (Task) TableName() string { return "tasks" }

// TaskAssignment maps to the task_assignments table: one row per ownership
// change, written only by the task repository. Rows are never updated or
// deleted by the application.
type TaskAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"not null" json:"task_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	AssignedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"assigned_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (TaskAssignment) TableName() string { return "task_assignments" }

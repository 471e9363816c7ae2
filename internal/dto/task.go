package dto

import "time"

// TaskResponse is the public shape of a task.
type TaskResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	TaskType    string        `json:"task_type"`
	CourseID    uint          `json:"course_id"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Duration    int           `json:"duration"`
	Status      string        `json:"status"`
	CreatedBy   uint          `json:"created_by"`
	AssignedTo  *uint         `json:"assigned_to,omitempty"`
	Assignee    *UserResponse `json:"assignee,omitempty"`
	Course      *CourseResponse `json:"course,omitempty"`
}

// CreateTaskRequest creates a task, optionally pre-assigned.
type CreateTaskRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	TaskType    string `json:"task_type"   binding:"required,oneof=grading office_hours proctoring lab_session other"`
	CourseID    uint   `json:"course_id"   binding:"required"`
	DueDate     string `json:"due_date"    binding:"omitempty,datetime=2006-01-02"`
	Duration    int    `json:"duration"    binding:"omitempty,min=0"`
	AssignedTo  *uint  `json:"assigned_to"`
}

// UpdateTaskRequest applies a partial task update. A non-nil AssignedTo
// supersedes the current assignee and appends to the assignment history.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	TaskType    *string `json:"task_type"   binding:"omitempty,oneof=grading office_hours proctoring lab_session other"`
	DueDate     *string `json:"due_date"    binding:"omitempty,datetime=2006-01-02"`
	Duration    *int    `json:"duration"    binding:"omitempty,min=0"`
	AssignedTo  *uint   `json:"assigned_to"`
}

// SetTaskStatusRequest moves a task through its status table.
type SetTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed cancelled"`
}

// UpcomingTasksRequest bounds the upcoming-task list.
type UpcomingTasksRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

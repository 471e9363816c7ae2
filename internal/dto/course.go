package dto

// CourseResponse is the public shape of a course.
type CourseResponse struct {
	ID           uint          `json:"id"`
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	Semester     string        `json:"semester"`
	Department   string        `json:"department,omitempty"`
	InstructorID uint          `json:"instructor_id"`
	Instructor   *UserResponse `json:"instructor,omitempty"`
}

// CreateCourseRequest creates a course.
type CreateCourseRequest struct {
	Code         string `json:"code"          binding:"required,max=20"`
	Name         string `json:"name"          binding:"required,max=200"`
	Semester     string `json:"semester"      binding:"required,max=20"`
	Department   string `json:"department"    binding:"omitempty,max=100"`
	InstructorID uint   `json:"instructor_id" binding:"required"`
}

// UpdateCourseRequest applies a partial course update.
type UpdateCourseRequest struct {
	Name         *string `json:"name"          binding:"omitempty,max=200"`
	Department   *string `json:"department"    binding:"omitempty,max=100"`
	InstructorID *uint   `json:"instructor_id"`
}

// CourseListRequest filters the course list.
type CourseListRequest struct {
	PaginationRequest
	Semester   string `form:"semester"   binding:"omitempty,max=20"`
	Department string `form:"department" binding:"omitempty,max=100"`
}

// AssignTaRequest attaches a TA to a course with a weekly hour budget.
type AssignTaRequest struct {
	TaID         uint   `json:"ta_id"          binding:"required"`
	HoursPerWeek int    `json:"hours_per_week" binding:"required,min=1,max=40"`
	StartDate    string `json:"start_date"     binding:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date"       binding:"omitempty,datetime=2006-01-02"`
}

// CourseTAResponse is the public shape of a course-TA registry row.
type CourseTAResponse struct {
	ID           uint            `json:"id"`
	CourseID     uint            `json:"course_id"`
	TaID         uint            `json:"ta_id"`
	HoursPerWeek int             `json:"hours_per_week"`
	Status       string          `json:"status"`
	Ta           *UserResponse   `json:"ta,omitempty"`
	Course       *CourseResponse `json:"course,omitempty"`
}

package dto

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID            uint   `json:"id"`
	InstitutionID string `json:"institution_id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	Department    string `json:"department,omitempty"`
	MaxHours      *int   `json:"max_hours,omitempty"`
}

// CreateUserRequest creates a user (admin only).
type CreateUserRequest struct {
	InstitutionID string `json:"institution_id" binding:"required,max=20"`
	Email         string `json:"email"          binding:"required,email"`
	FullName      string `json:"full_name"      binding:"required,min=2,max=100"`
	Role          string `json:"role"           binding:"required,oneof=ta staff department_chair dean admin"`
	Department    string `json:"department"     binding:"omitempty,max=100"`
	MaxHours      *int   `json:"max_hours"      binding:"omitempty,min=1,max=40"`
}

// CreateUserResponse returns the created user and its generated password.
type CreateUserResponse struct {
	User         *UserResponse `json:"user"`
	TempPassword string        `json:"temp_password"`
}

// UpdateUserRequest applies a partial profile update.
type UpdateUserRequest struct {
	Email      *string `json:"email"      binding:"omitempty,email"`
	FullName   *string `json:"full_name"  binding:"omitempty,min=2,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	MaxHours   *int    `json:"max_hours"  binding:"omitempty,min=1,max=40"`
}

// UserListRequest filters the user list.
type UserListRequest struct {
	PaginationRequest
	Role       string `form:"role"       binding:"omitempty,oneof=ta staff department_chair dean admin"`
	Department string `form:"department" binding:"omitempty,max=100"`
	Keyword    string `form:"keyword"    binding:"omitempty,max=50"`
}

// AssignRoleRequest changes a user's role (admin only).
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ta staff department_chair dean admin"`
}

// ResetPasswordResponse returns a freshly generated temporary password.
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

package model

// User roles. ta is scheduled; staff and above review requests.
const (
	RoleTA              = "ta"
	RoleStaff           = "staff"
	RoleDepartmentChair = "department_chair"
	RoleDean            = "dean"
	RoleAdmin           = "admin"
)

// User maps to the users table. Users are never hard-deleted; removal is a
// soft delete so historical requests keep their actor references.
type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	InstitutionID string `gorm:"type:varchar(20);not null"  json:"institution_id"`
	Email         string `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash  string `gorm:"type:varchar(255);not null" json:"-"`
	FullName      string `gorm:"type:varchar(100);not null" json:"full_name"`
	Role          string `gorm:"type:varchar(20);not null;default:'ta'" json:"role"`
	Department    string `gorm:"type:varchar(100)" json:"department,omitempty"`
	MaxHours      *int   `json:"max_hours,omitempty"`
	VersionedModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// IsReviewer reports whether the user's role may review leave and swap requests.
func (u *User) IsReviewer() bool {
	switch u.Role {
	case RoleStaff, RoleDepartmentChair, RoleDean, RoleAdmin:
		return true
	}
	return false
}

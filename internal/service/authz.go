package service

import "github.com/kbc0/TA-Management-System-sub000/internal/model"

// Action names a capability checked against a role. All role-based branching
// goes through Can so the policy lives in exactly one place.
type Action string

const (
	ActionManageUsers    Action = "users:manage"
	ActionListUsers      Action = "users:list"
	ActionManageCourses  Action = "courses:manage"
	ActionManageRoster   Action = "roster:manage"
	ActionManageTasks    Action = "tasks:manage"
	ActionManageExams    Action = "exams:manage"
	ActionReviewRequests Action = "requests:review"
	ActionViewReports    Action = "reports:view"
)

// reviewerActions are shared by every role that supervises TAs.
var reviewerActions = map[Action]bool{
	ActionListUsers:      true,
	ActionManageCourses:  true,
	ActionManageRoster:   true,
	ActionManageTasks:    true,
	ActionManageExams:    true,
	ActionReviewRequests: true,
	ActionViewReports:    true,
}

var capabilities = map[string]map[Action]bool{
	model.RoleTA:              {},
	model.RoleStaff:           reviewerActions,
	model.RoleDepartmentChair: reviewerActions,
	model.RoleDean:            reviewerActions,
	model.RoleAdmin: {
		ActionManageUsers:    true,
		ActionListUsers:      true,
		ActionManageCourses:  true,
		ActionManageRoster:   true,
		ActionManageTasks:    true,
		ActionManageExams:    true,
		ActionReviewRequests: true,
		ActionViewReports:    true,
	},
}

// Can reports whether a role may perform an action. Ownership checks
// (cancelling your own request, completing your own task) stay with the
// services, next to the rows they protect.
func Can(role string, action Action) bool {
	return capabilities[role][action]
}

// ReviewerRoles lists the roles allowed to review requests; the route layer
// uses it for its role gate.
func ReviewerRoles() []string {
	return []string{model.RoleStaff, model.RoleDepartmentChair, model.RoleDean, model.RoleAdmin}
}

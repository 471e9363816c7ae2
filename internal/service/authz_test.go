package service

import (
	"testing"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role   string
		action Action
		want   bool
	}{
		{model.RoleTA, ActionReviewRequests, false},
		{model.RoleTA, ActionManageTasks, false},
		{model.RoleStaff, ActionReviewRequests, true},
		{model.RoleStaff, ActionManageUsers, false},
		{model.RoleDepartmentChair, ActionManageTasks, true},
		{model.RoleDean, ActionViewReports, true},
		{model.RoleAdmin, ActionManageUsers, true},
		{"", ActionReviewRequests, false},
		{"imposter", ActionManageUsers, false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.action); got != tc.want {
			t.Errorf("Can(%q, %q) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestReviewerRoles(t *testing.T) {
	for _, role := range ReviewerRoles() {
		if !Can(role, ActionReviewRequests) {
			t.Errorf("role %q listed as reviewer but cannot review", role)
		}
	}
}

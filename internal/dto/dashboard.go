package dto

// TaskStatusCounts breaks tasks down by lifecycle status.
type TaskStatusCounts struct {
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// MyDashboardResponse is the TA-facing dashboard.
type MyDashboardResponse struct {
	ActiveCourses     int              `json:"active_courses"`
	WeeklyHours       int              `json:"weekly_hours"`
	Tasks             TaskStatusCounts `json:"tasks"`
	PendingLeaves     int64            `json:"pending_leaves"`
	PendingSwaps      int64            `json:"pending_swaps"`
	UpcomingTasks     []TaskResponse   `json:"upcoming_tasks"`
}

// TaWorkloadRow is one TA's row in the staff workload report.
type TaWorkloadRow struct {
	User           UserResponse     `json:"user"`
	ActiveCourses  int              `json:"active_courses"`
	WeeklyHours    int              `json:"weekly_hours"`
	Tasks          TaskStatusCounts `json:"tasks"`
	CompletionRate float64          `json:"completion_rate"`
}

// WorkloadReportResponse is the staff-facing workload dashboard.
type WorkloadReportResponse struct {
	Rows []TaWorkloadRow `json:"rows"`
}

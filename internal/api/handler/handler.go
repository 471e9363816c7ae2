package handler

import "github.com/kbc0/TA-Management-System-sub000/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Course       *CourseHandler
	Task         *TaskHandler
	Leave        *LeaveHandler
	Swap         *SwapHandler
	Exam         *ExamHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
	Export       *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Course:       NewCourseHandler(svc.Course),
		Task:         NewTaskHandler(svc.Task),
		Leave:        NewLeaveHandler(svc.Leave),
		Swap:         NewSwapHandler(svc.Swap),
		Exam:         NewExamHandler(svc.Exam),
		Notification: NewNotificationHandler(svc.Notification),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Export:       NewExportHandler(svc.Export),
	}
}

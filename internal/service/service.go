package service

import (
	"go.uber.org/zap"

	"github.com/kbc0/TA-Management-System-sub000/internal/repository"
	"github.com/kbc0/TA-Management-System-sub000/pkg/jwt"
	"github.com/kbc0/TA-Management-System-sub000/pkg/redis"
)

// Service bundles all domain services for the handler layer.
type Service struct {
	Auth         AuthService
	User         UserService
	Course       CourseService
	Task         TaskService
	Leave        LeaveService
	Swap         SwapService
	Exam         ExamService
	Notification NotificationService
	Dashboard    DashboardService
	Export       ExportService
}

// NewService wires every domain service against the shared repository. rdb
// may be nil; auth then skips blacklisting on logout.
func NewService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Course:       NewCourseService(repo, logger),
		Task:         NewTaskService(repo, logger),
		Leave:        NewLeaveService(repo, logger),
		Swap:         NewSwapService(repo, logger),
		Exam:         NewExamService(repo, logger),
		Notification: NewNotificationService(repo, logger),
		Dashboard:    NewDashboardService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}

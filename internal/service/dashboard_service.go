package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	"github.com/kbc0/TA-Management-System-sub000/internal/repository"
)

// DashboardService aggregates per-TA and department-wide views.
type DashboardService interface {
	MyDashboard(ctx context.Context, userID uint) (*dto.MyDashboardResponse, error)
	WorkloadReport(ctx context.Context) (*dto.WorkloadReportResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService creates the DashboardService.
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) MyDashboard(ctx context.Context, userID uint) (*dto.MyDashboardResponse, error) {
	roster, err := s.repo.CourseTA.ListByTa(ctx, userID)
	if err != nil {
		return nil, err
	}
	weeklyHours := 0
	for i := range roster {
		weeklyHours += roster[i].HoursPerWeek
	}

	counts, err := s.repo.Task.CountsByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	pendingLeaves, err := s.repo.Leave.CountPendingByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	pendingSwaps, err := s.repo.Swap.CountPendingByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.Task.ListUpcoming(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	return &dto.MyDashboardResponse{
		ActiveCourses: len(roster),
		WeeklyHours:   weeklyHours,
		Tasks:         toTaskStatusCounts(counts),
		PendingLeaves: pendingLeaves,
		PendingSwaps:  pendingSwaps,
		UpcomingTasks: toTaskResponses(upcoming),
	}, nil
}

// WorkloadReport builds one row per TA. Completion rate counts completed
// tasks over all non-cancelled ones; a TA with no tasks reads as 0.
func (s *dashboardService) WorkloadReport(ctx context.Context) (*dto.WorkloadReportResponse, error) {
	rows, err := buildWorkloadRows(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	return &dto.WorkloadReportResponse{Rows: rows}, nil
}

// buildWorkloadRows is shared with the xlsx export.
func buildWorkloadRows(ctx context.Context, repo *repository.Repository) ([]dto.TaWorkloadRow, error) {
	tas, err := repo.User.ListByRole(ctx, model.RoleTA)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.TaWorkloadRow, 0, len(tas))
	for i := range tas {
		roster, err := repo.CourseTA.ListByTa(ctx, tas[i].ID)
		if err != nil {
			return nil, err
		}
		weeklyHours := 0
		for j := range roster {
			weeklyHours += roster[j].HoursPerWeek
		}

		counts, err := repo.Task.CountsByAssignee(ctx, tas[i].ID)
		if err != nil {
			return nil, err
		}
		var rate float64
		if done := counts.Active + counts.Completed; done > 0 {
			rate = float64(counts.Completed) / float64(done)
		}

		rows = append(rows, dto.TaWorkloadRow{
			User:           *toUserResponse(&tas[i]),
			ActiveCourses:  len(roster),
			WeeklyHours:    weeklyHours,
			Tasks:          toTaskStatusCounts(counts),
			CompletionRate: rate,
		})
	}
	return rows, nil
}

func toTaskStatusCounts(c *repository.TaskStatusCounts) dto.TaskStatusCounts {
	return dto.TaskStatusCounts{
		Active:    c.Active,
		Completed: c.Completed,
		Cancelled: c.Cancelled,
	}
}

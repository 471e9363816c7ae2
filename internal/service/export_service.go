package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kbc0/TA-Management-System-sub000/internal/repository"
)

// ExportService renders exports: the staff workload report as xlsx and a
// per-TA calendar feed as ics.
type ExportService interface {
	WorkloadXLSX(ctx context.Context) ([]byte, error)
	CalendarICS(ctx context.Context, userID uint) ([]byte, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var workloadHeaders = []string{"Name", "Email", "Active Courses", "Weekly Hours", "Active Tasks", "Completed Tasks", "Completion Rate"}

func (s *exportService) WorkloadXLSX(ctx context.Context) ([]byte, error) {
	rows, err := buildWorkloadRows(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Workload"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range workloadHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		values := []any{
			row.User.FullName,
			row.User.Email,
			row.ActiveCourses,
			row.WeeklyHours,
			row.Tasks.Active,
			row.Tasks.Completed,
			fmt.Sprintf("%.0f%%", row.CompletionRate*100),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("workload xlsx render failed", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

// CalendarICS emits the user's upcoming task due dates and proctoring slots
// as VEVENTs. Task events are all-day on the due date; proctoring events run
// for the exam's duration.
func (s *exportService) CalendarICS(ctx context.Context, userID uint) ([]byte, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tasks, err := s.repo.Task.ListUpcoming(ctx, userID, 100)
	if err != nil {
		return nil, err
	}
	rooms, err := s.repo.Exam.ListRoomsByProctor(ctx, userID)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ta-management//calendar//EN")
	now := time.Now()

	for i := range tasks {
		if tasks[i].DueDate == nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("task-%d@ta-management", tasks[i].ID))
		ev.SetCreatedTime(now)
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(*tasks[i].DueDate)
		ev.SetAllDayEndAt(tasks[i].DueDate.AddDate(0, 0, 1))
		ev.SetSummary(tasks[i].Title)
		if tasks[i].Description != "" {
			ev.SetDescription(tasks[i].Description)
		}
	}
	for i := range rooms {
		if rooms[i].Exam == nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("proctor-%d@ta-management", rooms[i].ID))
		ev.SetCreatedTime(now)
		ev.SetDtStampTime(now)
		ev.SetStartAt(rooms[i].Exam.ExamDate)
		ev.SetEndAt(rooms[i].Exam.ExamDate.Add(time.Duration(rooms[i].Exam.Duration) * time.Minute))
		ev.SetSummary("Proctoring: " + rooms[i].Exam.Name)
		ev.SetLocation(rooms[i].Room)
	}

	s.logger.Debug("calendar export",
		zap.Uint("user_id", user.ID),
		zap.Int("tasks", len(tasks)),
		zap.Int("rooms", len(rooms)))
	return []byte(cal.Serialize()), nil
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	"github.com/kbc0/TA-Management-System-sub000/internal/repository"
)

var (
	ErrExamNotFound       = errors.New("exam not found")
	ErrExamCourseNotFound = errors.New("exam course not found")
	ErrExamRoomNotFound   = errors.New("exam room not found")
	ErrExamDateInvalid    = errors.New("exam date invalid")
	ErrProctorNotEligible = errors.New("proctor not on the course roster")
)

// ExamService handles exams, their rooms and proctor assignment.
type ExamService interface {
	Create(ctx context.Context, req *dto.CreateExamRequest) (*dto.ExamResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ExamResponse, error)
	ListByCourse(ctx context.Context, courseID uint) ([]dto.ExamResponse, error)
	AssignProctor(ctx context.Context, roomID uint, req *dto.AssignProctorRequest) (*dto.ExamRoomResponse, error)
	ListMyProctoring(ctx context.Context, userID uint) ([]dto.ExamRoomResponse, error)
}

type examService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExamService creates the ExamService.
func NewExamService(repo *repository.Repository, logger *zap.Logger) ExamService {
	return &examService{repo: repo, logger: logger}
}

func parseExamDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", dateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrExamDateInvalid
}

func (s *examService) Create(ctx context.Context, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamCourseNotFound
		}
		return nil, err
	}
	examDate, err := parseExamDate(req.ExamDate)
	if err != nil {
		return nil, err
	}

	// Pre-assigned proctors must already be on the course roster.
	for _, r := range req.Rooms {
		if r.ProctorID == nil {
			continue
		}
		if _, err := s.repo.CourseTA.GetActivePair(ctx, req.CourseID, *r.ProctorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProctorNotEligible
			}
			return nil, err
		}
	}

	exam := &model.Exam{
		CourseID: req.CourseID,
		Name:     req.Name,
		ExamDate: examDate,
		Duration: req.Duration,
	}
	for _, r := range req.Rooms {
		exam.Rooms = append(exam.Rooms, model.ExamRoom{
			Room:      r.Room,
			Capacity:  r.Capacity,
			ProctorID: r.ProctorID,
		})
	}
	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		s.logger.Error("exam create failed", zap.Uint("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}
	return toExamResponse(exam), nil
}

func (s *examService) GetByID(ctx context.Context, id uint) (*dto.ExamResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return toExamResponse(exam), nil
}

func (s *examService) ListByCourse(ctx context.Context, courseID uint) ([]dto.ExamResponse, error) {
	exams, err := s.repo.Exam.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		result = append(result, *toExamResponse(&exams[i]))
	}
	return result, nil
}

// AssignProctor sets or replaces the room's proctor after a roster check on
// the exam's course.
func (s *examService) AssignProctor(ctx context.Context, roomID uint, req *dto.AssignProctorRequest) (*dto.ExamRoomResponse, error) {
	var room *model.ExamRoom
	err := s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		var err error
		room, err = txRepo.Exam.GetRoomByID(ctx, roomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExamRoomNotFound
			}
			return err
		}
		if room.Exam == nil {
			return ErrExamRoomNotFound
		}
		if _, err := txRepo.CourseTA.GetActivePair(ctx, room.Exam.CourseID, req.ProctorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProctorNotEligible
			}
			return err
		}
		room.ProctorID = &req.ProctorID
		return txRepo.Exam.UpdateRoom(ctx, room)
	})
	if err != nil {
		return nil, err
	}

	if err := notify(ctx, s.repo, req.ProctorID, model.NotificationTaskAssigned,
		"You were assigned to proctor "+room.Exam.Name,
		map[string]any{"exam_room_id": room.ID, "exam_id": room.ExamID}); err != nil {
		s.logger.Warn("proctor notification failed", zap.Uint("room_id", room.ID), zap.Error(err))
	}
	return toExamRoomResponse(room), nil
}

func (s *examService) ListMyProctoring(ctx context.Context, userID uint) ([]dto.ExamRoomResponse, error) {
	rooms, err := s.repo.Exam.ListRoomsByProctor(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ExamRoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, *toExamRoomResponse(&rooms[i]))
	}
	return result, nil
}

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
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseCodeExists   = errors.New("course code already exists for this semester")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrTaNotFound         = errors.New("ta not found")
	ErrNotATa             = errors.New("user is not a teaching assistant")
	ErrTaNotOnCourse      = errors.New("ta is not assigned to this course")
)

const dateLayout = "2006-01-02"

// CourseService handles courses and the course-TA assignment registry.
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID uint) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.CourseResponse, error)
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCourseRequest, callerID uint) (*dto.CourseResponse, error)

	AssignTa(ctx context.Context, courseID uint, req *dto.AssignTaRequest, callerID uint) (*dto.CourseTAResponse, error)
	RemoveTa(ctx context.Context, courseID, taID uint) error
	ListTas(ctx context.Context, courseID uint) ([]dto.CourseTAResponse, error)
	ListCoursesForTa(ctx context.Context, taID uint) ([]dto.CourseTAResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService creates the CourseService.
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID uint) (*dto.CourseResponse, error) {
	if _, err := s.repo.Course.GetByCodeAndSemester(ctx, req.Code, req.Semester); err == nil {
		return nil, ErrCourseCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.User.GetByID(ctx, req.InstructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	course := &model.Course{
		Code:         req.Code,
		Name:         req.Name,
		Semester:     req.Semester,
		Department:   req.Department,
		InstructorID: req.InstructorID,
	}
	course.CreatedBy = &callerID

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("course create failed", zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("course lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error) {
	filters := &repository.CourseListFilters{
		Semester:   req.Semester,
		Department: req.Department,
	}
	courses, total, err := s.repo.Course.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("course list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, total, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *dto.UpdateCourseRequest, callerID uint) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.InstructorID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.InstructorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInstructorNotFound
			}
			return nil, err
		}
		course.InstructorID = *req.InstructorID
	}
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("course update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

// AssignTa attaches a TA to a course. An existing active row for the pair is
// returned as-is rather than treated as an error.
func (s *courseService) AssignTa(ctx context.Context, courseID uint, req *dto.AssignTaRequest, callerID uint) (*dto.CourseTAResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	ta, err := s.repo.User.GetByID(ctx, req.TaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaNotFound
		}
		return nil, err
	}
	if ta.Role != model.RoleTA {
		return nil, ErrNotATa
	}

	if existing, err := s.repo.CourseTA.GetActivePair(ctx, courseID, req.TaID); err == nil {
		return toCourseTAResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := &model.CourseTA{
		CourseID:     courseID,
		TaID:         req.TaID,
		HoursPerWeek: req.HoursPerWeek,
		Status:       model.CourseTAStatusActive,
	}
	if req.StartDate != "" {
		if t, err := time.Parse(dateLayout, req.StartDate); err == nil {
			row.StartDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse(dateLayout, req.EndDate); err == nil {
			row.EndDate = &t
		}
	}

	if err := s.repo.CourseTA.Create(ctx, row); err != nil {
		s.logger.Error("course ta assign failed",
			zap.Uint("course_id", courseID), zap.Uint("ta_id", req.TaID), zap.Error(err))
		return nil, err
	}
	return toCourseTAResponse(row), nil
}

func (s *courseService) RemoveTa(ctx context.Context, courseID, taID uint) error {
	if _, err := s.repo.CourseTA.GetActivePair(ctx, courseID, taID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaNotOnCourse
		}
		return err
	}
	if err := s.repo.CourseTA.Remove(ctx, courseID, taID); err != nil {
		s.logger.Error("course ta remove failed",
			zap.Uint("course_id", courseID), zap.Uint("ta_id", taID), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseService) ListTas(ctx context.Context, courseID uint) ([]dto.CourseTAResponse, error) {
	rows, err := s.repo.CourseTA.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("course ta list failed", zap.Uint("course_id", courseID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.CourseTAResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *toCourseTAResponse(&rows[i]))
	}
	return result, nil
}

func (s *courseService) ListCoursesForTa(ctx context.Context, taID uint) ([]dto.CourseTAResponse, error) {
	rows, err := s.repo.CourseTA.ListByTa(ctx, taID)
	if err != nil {
		s.logger.Error("ta course list failed", zap.Uint("ta_id", taID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.CourseTAResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *toCourseTAResponse(&rows[i]))
	}
	return result, nil
}

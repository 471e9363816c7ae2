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
	ErrTaskNotFound          = errors.New("task not found")
	ErrTaskCourseNotFound    = errors.New("task course not found")
	ErrTaskAssigneeNotFound  = errors.New("task assignee not found")
	ErrTaskStatusTransition  = errors.New("task status transition not allowed")
	ErrTaskNotOwnerOrManager = errors.New("only the assignee or staff may update task status")
)

// taskTransitions is the explicit status table. A completed task can be
// reopened (staff closing it by mistake happens); cancelled is terminal.
var taskTransitions = map[string][]string{
	model.TaskStatusActive:    {model.TaskStatusCompleted, model.TaskStatusCancelled},
	model.TaskStatusCompleted: {model.TaskStatusActive},
	model.TaskStatusCancelled: {},
}

// TaskService handles the task lifecycle: creation, partial update,
// reassignment with append-only history, status transitions and reads.
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest, callerID uint) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.TaskResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateTaskRequest, callerID uint) (*dto.TaskResponse, error)
	SetStatus(ctx context.Context, id uint, status string, callerID uint, callerRole string) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id uint) error
	ListByCourse(ctx context.Context, courseID uint) ([]dto.TaskResponse, error)
	ListByAssignee(ctx context.Context, userID uint) ([]dto.TaskResponse, error)
	ListUpcoming(ctx context.Context, userID uint, limit int) ([]dto.TaskResponse, error)
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService creates the TaskService.
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest, callerID uint) (*dto.TaskResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskCourseNotFound
		}
		return nil, err
	}

	if req.AssignedTo != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskAssigneeNotFound
			}
			return nil, err
		}
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		TaskType:    req.TaskType,
		CourseID:    req.CourseID,
		Duration:    req.Duration,
		Status:      model.TaskStatusActive,
		CreatedBy:   callerID,
	}
	if req.DueDate != "" {
		if t, err := time.Parse(dateLayout, req.DueDate); err == nil {
			task.DueDate = &t
		}
	}

	// Insert and, when pre-assigned, the first history row in one unit.
	err := s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Task.Create(ctx, task); err != nil {
			return err
		}
		if req.AssignedTo != nil {
			return txRepo.Task.Reassign(ctx, task, *req.AssignedTo)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("task create failed", zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

func (s *taskService) GetByID(ctx context.Context, id uint) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("task lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) Update(ctx context.Context, id uint, req *dto.UpdateTaskRequest, callerID uint) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.TaskType != nil {
		task.TaskType = *req.TaskType
	}
	if req.DueDate != nil {
		if t, err := time.Parse(dateLayout, *req.DueDate); err == nil {
			task.DueDate = &t
		}
	}
	if req.Duration != nil {
		task.Duration = *req.Duration
	}

	reassignTo := req.AssignedTo
	if reassignTo != nil && task.AssignedTo != nil && *reassignTo == *task.AssignedTo {
		reassignTo = nil // no ownership change, no history row
	}
	if reassignTo != nil {
		if _, err := s.repo.User.GetByID(ctx, *reassignTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskAssigneeNotFound
			}
			return nil, err
		}
	}

	err = s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		if reassignTo != nil {
			return txRepo.Task.Reassign(ctx, task, *reassignTo)
		}
		return txRepo.Task.Update(ctx, task)
	})
	if err != nil {
		s.logger.Error("task update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// SetStatus applies the transition table. The current assignee may move their
// own task; anyone with the task-management capability may move any task.
func (s *taskService) SetStatus(ctx context.Context, id uint, status string, callerID uint, callerRole string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	isAssignee := task.AssignedTo != nil && *task.AssignedTo == callerID
	if !isAssignee && !Can(callerRole, ActionManageTasks) {
		return nil, ErrTaskNotOwnerOrManager
	}

	if !transitionAllowed(task.Status, status) {
		return nil, ErrTaskStatusTransition
	}

	task.Status = status
	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("task status update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toTaskResponse(task), nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range taskTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *taskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Task.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	if err := s.repo.Task.Delete(ctx, id); err != nil {
		s.logger.Error("task delete failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *taskService) ListByCourse(ctx context.Context, courseID uint) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("task list by course failed", zap.Uint("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func (s *taskService) ListByAssignee(ctx context.Context, userID uint) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListByAssignee(ctx, userID)
	if err != nil {
		s.logger.Error("task list by assignee failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func (s *taskService) ListUpcoming(ctx context.Context, userID uint, limit int) ([]dto.TaskResponse, error) {
	if limit <= 0 {
		limit = 5
	}
	tasks, err := s.repo.Task.ListUpcoming(ctx, userID, limit)
	if err != nil {
		s.logger.Error("upcoming task list failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func toTaskResponses(tasks []model.Task) []dto.TaskResponse {
	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result
}

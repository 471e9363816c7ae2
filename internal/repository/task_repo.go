package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

// TaskStatusCounts groups a user's tasks by status.
type TaskStatusCounts struct {
	Active    int64
	Completed int64
	Cancelled int64
}

// TaskRepository is the tasks data access interface. Reassign is the only
// writer of task_assignments; callers never touch the history table directly.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	Reassign(ctx context.Context, task *model.Task, newAssignee uint) error
	ListByCourse(ctx context.Context, courseID uint) ([]model.Task, error)
	ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error)
	ListUpcoming(ctx context.Context, userID uint, limit int) ([]model.Task, error)
	History(ctx context.Context, taskID uint) ([]model.TaskAssignment, error)
	CountsByAssignee(ctx context.Context, userID uint) (*TaskStatusCounts, error)
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo creates the GORM-backed TaskRepository.
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Assignee").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByIDForUpdate locks the task row for the duration of the surrounding
// transaction. Only meaningful inside Repository.Atomic.
func (r *taskRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id uint) error {
	// Hard delete; history rows go with it via the FK cascade.
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}

// Reassign moves the task to a new owner and appends the history row in the
// same call. Old history rows are never deleted.
func (r *taskRepo) Reassign(ctx context.Context, task *model.Task, newAssignee uint) error {
	assignee := newAssignee
	task.AssignedTo = &assignee
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return err
	}
	history := &model.TaskAssignment{
		TaskID:     task.ID,
		UserID:     newAssignee,
		AssignedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *taskRepo) ListByCourse(ctx context.Context, courseID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("course_id = ?", courseID).
		Order("due_date ASC NULLS LAST").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("assigned_to = ?", userID).
		Order("due_date ASC NULLS LAST").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) ListUpcoming(ctx context.Context, userID uint, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("assigned_to = ? AND status = ? AND due_date >= ?",
			userID, model.TaskStatusActive, time.Now()).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) History(ctx context.Context, taskID uint) ([]model.TaskAssignment, error) {
	var rows []model.TaskAssignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("assigned_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *taskRepo) CountsByAssignee(ctx context.Context, userID uint) (*TaskStatusCounts, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("assigned_to = ?", userID).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &TaskStatusCounts{}
	for _, rr := range rows {
		switch rr.Status {
		case model.TaskStatusActive:
			counts.Active = rr.N
		case model.TaskStatusCompleted:
			counts.Completed = rr.N
		case model.TaskStatusCancelled:
			counts.Cancelled = rr.N
		}
	}
	return counts, nil
}

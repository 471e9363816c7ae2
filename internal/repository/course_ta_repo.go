package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

// CourseTARepository is the assignment-registry data access interface.
type CourseTARepository interface {
	Create(ctx context.Context, row *model.CourseTA) error
	GetActivePair(ctx context.Context, courseID, taID uint) (*model.CourseTA, error)
	Remove(ctx context.Context, courseID, taID uint) error
	ListByCourse(ctx context.Context, courseID uint) ([]model.CourseTA, error)
	ListByTa(ctx context.Context, taID uint) ([]model.CourseTA, error)
	SumActiveHours(ctx context.Context, taID uint) (int, error)
}

type courseTARepo struct {
	db *gorm.DB
}

// NewCourseTARepo creates the GORM-backed CourseTARepository.
func NewCourseTARepo(db *gorm.DB) CourseTARepository {
	return &courseTARepo{db: db}
}

func (r *courseTARepo) Create(ctx context.Context, row *model.CourseTA) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *courseTARepo) GetActivePair(ctx context.Context, courseID, taID uint) (*model.CourseTA, error) {
	var row model.CourseTA
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND ta_id = ? AND status = ?", courseID, taID, model.CourseTAStatusActive).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Remove ends the active registry row for the pair. The row is kept so past
// assignments stay attributable; ended rows are invisible to the active-only
// queries below.
func (r *courseTARepo) Remove(ctx context.Context, courseID, taID uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.CourseTA{}).
		Where("course_id = ? AND ta_id = ? AND status = ?", courseID, taID, model.CourseTAStatusActive).
		Updates(map[string]interface{}{
			"status":   model.CourseTAStatusEnded,
			"end_date": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *courseTARepo) ListByCourse(ctx context.Context, courseID uint) ([]model.CourseTA, error) {
	var rows []model.CourseTA
	err := r.db.WithContext(ctx).
		Preload("Ta").
		Where("course_id = ? AND status = ?", courseID, model.CourseTAStatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseTARepo) ListByTa(ctx context.Context, taID uint) ([]model.CourseTA, error) {
	var rows []model.CourseTA
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("ta_id = ? AND status = ?", taID, model.CourseTAStatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseTARepo) SumActiveHours(ctx context.Context, taID uint) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseTA{}).
		Where("ta_id = ? AND status = ?", taID, model.CourseTAStatusActive).
		Select("COALESCE(SUM(hours_per_week), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

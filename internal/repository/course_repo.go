package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	pkgerrors "github.com/kbc0/TA-Management-System-sub000/pkg/errors"
)

// CourseListFilters narrows the course list.
type CourseListFilters struct {
	Semester   string
	Department string
}

// CourseRepository is the courses data access interface.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id uint) (*model.Course, error)
	GetByCodeAndSemester(ctx context.Context, code, semester string) (*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	List(ctx context.Context, filters *CourseListFilters, offset, limit int) ([]model.Course, int64, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates the GORM-backed CourseRepository.
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByCodeAndSemester(ctx context.Context, code, semester string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("code = ? AND semester = ?", code, semester).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Update writes the course back under a version guard; see userRepo.Update.
func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	oldVersion := course.Version
	result := r.db.WithContext(ctx).
		Model(course).
		Where("id = ? AND version = ?", course.ID, oldVersion).
		Updates(map[string]interface{}{
			"name":          course.Name,
			"department":    course.Department,
			"instructor_id": course.InstructorID,
			"updated_by":    course.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	course.Version = oldVersion + 1
	return nil
}

func (r *courseRepo) List(ctx context.Context, filters *CourseListFilters, offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Course{})
	if filters != nil {
		if filters.Semester != "" {
			db = db.Where("semester = ?", filters.Semester)
		}
		if filters.Department != "" {
			db = db.Where("department = ?", filters.Department)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Instructor").
		Offset(offset).Limit(limit).
		Order("code ASC").
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

// ExamRepository is the exams and exam_rooms data access interface.
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id uint) (*model.Exam, error)
	ListByCourse(ctx context.Context, courseID uint) ([]model.Exam, error)
	GetRoomByID(ctx context.Context, id uint) (*model.ExamRoom, error)
	GetRoomByIDForUpdate(ctx context.Context, id uint) (*model.ExamRoom, error)
	UpdateRoom(ctx context.Context, room *model.ExamRoom) error
	ListRoomsByProctor(ctx context.Context, proctorID uint) ([]model.ExamRoom, error)
}

type examRepo struct {
	db *gorm.DB
}

// NewExamRepo creates the GORM-backed ExamRepository.
func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	// Rooms attached to the struct are inserted in the same statement batch.
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepo) GetByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Rooms.Proctor").
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) ListByCourse(ctx context.Context, courseID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Rooms.Proctor").
		Where("course_id = ?", courseID).
		Order("exam_date ASC").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepo) GetRoomByID(ctx context.Context, id uint) (*model.ExamRoom, error) {
	var room model.ExamRoom
	err := r.db.WithContext(ctx).
		Preload("Exam").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoomByIDForUpdate locks the room row for the duration of the surrounding
// transaction. Only meaningful inside Repository.Atomic.
func (r *examRepo) GetRoomByIDForUpdate(ctx context.Context, id uint) (*model.ExamRoom, error) {
	var room model.ExamRoom
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *examRepo) UpdateRoom(ctx context.Context, room *model.ExamRoom) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *examRepo) ListRoomsByProctor(ctx context.Context, proctorID uint) ([]model.ExamRoom, error) {
	var rooms []model.ExamRoom
	err := r.db.WithContext(ctx).
		Preload("Exam").
		Preload("Exam.Course").
		Where("proctor_id = ?", proctorID).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

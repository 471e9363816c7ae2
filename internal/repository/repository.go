package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all entity repositories.
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Course       CourseRepository
	CourseTA     CourseTARepository
	Task         TaskRepository
	Leave        LeaveRepository
	Swap         SwapRepository
	Exam         ExamRepository
	Notification NotificationRepository
}

// NewRepository wires the GORM implementations over one connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Course:       NewCourseRepo(db),
		CourseTA:     NewCourseTARepo(db),
		Task:         NewTaskRepo(db),
		Leave:        NewLeaveRepo(db),
		Swap:         NewSwapRepo(db),
		Exam:         NewExamRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

// Atomic runs fn inside one database transaction; every repository reached
// through the passed aggregate operates on that transaction. Returning an
// error rolls everything back. Multi-row mutations that must appear atomic
// (swap approval above all) go through here.
//
// A Repository assembled without a db (unit tests over mock repos) runs fn
// directly.
func (r *Repository) Atomic(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

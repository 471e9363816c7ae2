package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

// LeaveRepository is the leave_requests data access interface.
type LeaveRepository interface {
	Create(ctx context.Context, req *model.LeaveRequest) error
	GetByID(ctx context.Context, id uint) (*model.LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*model.LeaveRequest, error)
	Update(ctx context.Context, req *model.LeaveRequest) error
	Delete(ctx context.Context, id uint) error
	ListByRequester(ctx context.Context, requesterID uint) ([]model.LeaveRequest, error)
	ListPending(ctx context.Context) ([]model.LeaveRequest, error)
	CountPendingByRequester(ctx context.Context, requesterID uint) (int64, error)
}

type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo creates the GORM-backed LeaveRepository.
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, req *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *leaveRepo) GetByID(ctx context.Context, id uint) (*model.LeaveRequest, error) {
	var req model.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByIDForUpdate locks the request row for the duration of the surrounding
// transaction. Only meaningful inside Repository.Atomic.
func (r *leaveRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.LeaveRequest, error) {
	var req model.LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *leaveRepo) Update(ctx context.Context, req *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *leaveRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.LeaveRequest{}, id).Error
}

func (r *leaveRepo) ListByRequester(ctx context.Context, requesterID uint) ([]model.LeaveRequest, error) {
	var reqs []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *leaveRepo) ListPending(ctx context.Context) ([]model.LeaveRequest, error) {
	var reqs []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ?", model.LeaveStatusPending).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *leaveRepo) CountPendingByRequester(ctx context.Context, requesterID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.LeaveRequest{}).
		Where("requester_id = ? AND status = ?", requesterID, model.LeaveStatusPending).
		Count(&n).Error
	return n, err
}

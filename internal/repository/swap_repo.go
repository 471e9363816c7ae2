package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

// SwapRepository is the swap_requests data access interface.
type SwapRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*model.SwapRequest, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*model.SwapRequest, error)
	Update(ctx context.Context, req *model.SwapRequest) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]model.SwapRequest, error)
	ListPending(ctx context.Context) ([]model.SwapRequest, error)
	CountPendingByRequester(ctx context.Context, requesterID uint) (int64, error)
}

type swapRepo struct {
	db *gorm.DB
}

// NewSwapRepo creates the GORM-backed SwapRepository.
func NewSwapRepo(db *gorm.DB) SwapRepository {
	return &swapRepo{db: db}
}

func (r *swapRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *swapRepo) GetByID(ctx context.Context, id uint) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Target").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByIDForUpdate locks the request row for the duration of the surrounding
// transaction, serializing concurrent reviews of the same request. Only
// meaningful inside Repository.Atomic.
func (r *swapRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRepo) Update(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *swapRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.SwapRequest{}, id).Error
}

func (r *swapRepo) ListByUser(ctx context.Context, userID uint) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Target").
		Where("requester_id = ? OR target_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *swapRepo) ListPending(ctx context.Context) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Target").
		Where("status = ?", model.SwapStatusPending).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *swapRepo) CountPendingByRequester(ctx context.Context, requesterID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("requester_id = ? AND status = ?", requesterID, model.SwapStatusPending).
		Count(&n).Error
	return n, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

// NotificationRepository is the notifications data access interface.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo creates the GORM-backed NotificationRepository.
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uint, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var rows []model.Notification
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = FALSE")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// MarkRead returns the number of rows updated; zero means the notification
// does not exist or belongs to someone else.
func (r *notificationRepo) MarkRead(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Update("is_read", true).Error
}

package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	"github.com/kbc0/TA-Management-System-sub000/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService exposes the caller's notification feed.
type NotificationService interface {
	List(ctx context.Context, userID uint, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService creates the NotificationService.
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, userID uint, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	rows, total, err := s.repo.Notification.ListByUser(ctx, userID, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("notification list failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *toNotificationResponse(&rows[i]))
	}
	return result, total, nil
}

// MarkRead is scoped to the owner; marking someone else's notification reads
// as not found.
func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) error {
	affected, err := s.repo.Notification.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}

// notify writes a notification row outside any caller transaction. A failed
// notification never fails the operation that triggered it; callers log the
// returned error and move on.
func notify(ctx context.Context, repo *repository.Repository, userID uint, kind, title string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return repo.Notification.Create(ctx, &model.Notification{
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Payload: datatypes.JSON(raw),
	})
}

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
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrLeaveDateRange       = errors.New("leave end date before start date")
	ErrLeaveAlreadyReviewed = errors.New("leave request already reviewed")
	ErrLeaveNotOwner        = errors.New("leave request belongs to another user")
	ErrLeaveSelfReview      = errors.New("cannot review own leave request")
	ErrTooManyPending       = errors.New("too many pending requests")
)

// maxPendingPerUser bounds open leave and swap requests per requester so a
// single TA cannot flood the review queue.
const maxPendingPerUser = 5

// LeaveService handles the leave request lifecycle.
type LeaveService interface {
	Create(ctx context.Context, req *dto.CreateLeaveRequest, requesterID uint) (*dto.LeaveResponse, error)
	GetByID(ctx context.Context, id uint, callerID uint, callerRole string) (*dto.LeaveResponse, error)
	Review(ctx context.Context, id uint, req *dto.ReviewLeaveRequest, reviewerID uint) (*dto.LeaveResponse, error)
	Cancel(ctx context.Context, id uint, callerID uint) error
	ListMine(ctx context.Context, requesterID uint) ([]dto.LeaveResponse, error)
	ListPending(ctx context.Context) ([]dto.LeaveResponse, error)
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService creates the LeaveService.
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

func (s *leaveService) Create(ctx context.Context, req *dto.CreateLeaveRequest, requesterID uint) (*dto.LeaveResponse, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrLeaveDateRange
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrLeaveDateRange
	}
	if end.Before(start) {
		return nil, ErrLeaveDateRange
	}

	pending, err := s.repo.Leave.CountPendingByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if pending >= maxPendingPerUser {
		return nil, ErrTooManyPending
	}

	leave := &model.LeaveRequest{
		RequesterID:  requesterID,
		LeaveType:    req.LeaveType,
		StartDate:    start,
		EndDate:      end,
		DurationDays: int(end.Sub(start).Hours()/24) + 1,
		Reason:       req.Reason,
		Status:       model.LeaveStatusPending,
	}
	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("leave create failed", zap.Uint("requester_id", requesterID), zap.Error(err))
		return nil, err
	}
	return toLeaveResponse(leave), nil
}

func (s *leaveService) GetByID(ctx context.Context, id uint, callerID uint, callerRole string) (*dto.LeaveResponse, error) {
	leave, err := s.repo.Leave.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	// Only the requester and reviewer-capable roles may read a request.
	if leave.RequesterID != callerID && !Can(callerRole, ActionReviewRequests) {
		return nil, ErrLeaveNotOwner
	}
	return toLeaveResponse(leave), nil
}

// Review stamps the decision. The row is locked for the duration of the
// transaction so two reviewers cannot both win; the loser sees a non-pending
// status and gets ErrLeaveAlreadyReviewed.
func (s *leaveService) Review(ctx context.Context, id uint, req *dto.ReviewLeaveRequest, reviewerID uint) (*dto.LeaveResponse, error) {
	var leave *model.LeaveRequest
	err := s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		var err error
		leave, err = txRepo.Leave.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeaveNotFound
			}
			return err
		}
		if leave.Status != model.LeaveStatusPending {
			return ErrLeaveAlreadyReviewed
		}
		if leave.RequesterID == reviewerID {
			return ErrLeaveSelfReview
		}

		now := time.Now()
		leave.Status = req.Status
		leave.ReviewerID = &reviewerID
		leave.ReviewerNotes = req.ReviewerNotes
		leave.ReviewedAt = &now
		return txRepo.Leave.Update(ctx, leave)
	})
	if err != nil {
		return nil, err
	}

	s.notifyReviewed(ctx, leave)
	return toLeaveResponse(leave), nil
}

// Cancel withdraws a pending request. Reviewed requests are immutable.
func (s *leaveService) Cancel(ctx context.Context, id uint, callerID uint) error {
	return s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		leave, err := txRepo.Leave.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeaveNotFound
			}
			return err
		}
		if leave.RequesterID != callerID {
			return ErrLeaveNotOwner
		}
		if leave.Status != model.LeaveStatusPending {
			return ErrLeaveAlreadyReviewed
		}
		return txRepo.Leave.Delete(ctx, id)
	})
}

func (s *leaveService) ListMine(ctx context.Context, requesterID uint) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return toLeaveResponses(leaves), nil
}

func (s *leaveService) ListPending(ctx context.Context) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return toLeaveResponses(leaves), nil
}

func (s *leaveService) notifyReviewed(ctx context.Context, leave *model.LeaveRequest) {
	err := notify(ctx, s.repo, leave.RequesterID, model.NotificationLeaveReviewed,
		"Your leave request was "+leave.Status,
		map[string]any{
			"leave_request_id": leave.ID,
			"status":           leave.Status,
			"start_date":       leave.StartDate.Format(dateLayout),
			"end_date":         leave.EndDate.Format(dateLayout),
		})
	if err != nil {
		s.logger.Warn("leave review notification failed",
			zap.Uint("leave_id", leave.ID), zap.Error(err))
	}
}

func toLeaveResponses(leaves []model.LeaveRequest) []dto.LeaveResponse {
	result := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		result = append(result, *toLeaveResponse(&leaves[i]))
	}
	return result
}

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
	ErrSwapNotFound           = errors.New("swap request not found")
	ErrSwapAssignmentNotFound = errors.New("swap assignment not found")
	ErrSwapNotOwner           = errors.New("assignment not owned by requester")
	ErrSwapSelfTarget         = errors.New("cannot swap with yourself")
	ErrSwapTargetNotFound     = errors.New("swap target not found")
	ErrSwapTargetIneligible   = errors.New("swap target not on the course roster")
	ErrSwapProposedNotOwned   = errors.New("proposed assignment not owned by target")
	ErrSwapNotPending         = errors.New("swap request is not pending")
)

// SwapService handles the swap request lifecycle. Approval applies the
// reassignment inside the review transaction, so a swap is never observable
// as approved-but-not-applied.
type SwapService interface {
	Create(ctx context.Context, req *dto.CreateSwapRequest, requesterID uint) (*dto.SwapResponse, error)
	GetByID(ctx context.Context, id uint, callerID uint, callerRole string) (*dto.SwapResponse, error)
	Review(ctx context.Context, id uint, req *dto.ReviewSwapRequest, reviewerID uint) (*dto.SwapResponse, error)
	Cancel(ctx context.Context, id uint, callerID uint) error
	ListMine(ctx context.Context, userID uint) ([]dto.SwapResponse, error)
	ListPending(ctx context.Context) ([]dto.SwapResponse, error)
	ListEligibleTargets(ctx context.Context, req *dto.EligibleTargetsRequest, callerID uint) ([]dto.EligibleTargetResponse, error)
}

type swapService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSwapService creates the SwapService.
func NewSwapService(repo *repository.Repository, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, logger: logger}
}

// assignmentOwner resolves the current owner and course for the assignment a
// swap refers to: the assignee of a task or the proctor of an exam room.
func assignmentOwner(ctx context.Context, repo *repository.Repository, assignmentType string, assignmentID uint) (*uint, uint, error) {
	switch assignmentType {
	case model.SwapAssignmentTask:
		task, err := repo.Task.GetByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrSwapAssignmentNotFound
			}
			return nil, 0, err
		}
		return task.AssignedTo, task.CourseID, nil
	case model.SwapAssignmentExam:
		room, err := repo.Exam.GetRoomByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrSwapAssignmentNotFound
			}
			return nil, 0, err
		}
		if room.Exam == nil {
			return nil, 0, ErrSwapAssignmentNotFound
		}
		return room.ProctorID, room.Exam.CourseID, nil
	default:
		return nil, 0, ErrSwapAssignmentNotFound
	}
}

func (s *swapService) Create(ctx context.Context, req *dto.CreateSwapRequest, requesterID uint) (*dto.SwapResponse, error) {
	if req.TargetID == requesterID {
		return nil, ErrSwapSelfTarget
	}
	if _, err := s.repo.User.GetByID(ctx, req.TargetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapTargetNotFound
		}
		return nil, err
	}

	owner, courseID, err := assignmentOwner(ctx, s.repo, req.AssignmentType, req.OriginalAssignmentID)
	if err != nil {
		return nil, err
	}
	if owner == nil || *owner != requesterID {
		return nil, ErrSwapNotOwner
	}

	// The target must hold an active roster row on the same course.
	if _, err := s.repo.CourseTA.GetActivePair(ctx, courseID, req.TargetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapTargetIneligible
		}
		return nil, err
	}

	if req.ProposedAssignmentID != nil {
		propOwner, _, err := assignmentOwner(ctx, s.repo, req.AssignmentType, *req.ProposedAssignmentID)
		if err != nil {
			return nil, err
		}
		if propOwner == nil || *propOwner != req.TargetID {
			return nil, ErrSwapProposedNotOwned
		}
	}

	pending, err := s.repo.Swap.CountPendingByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if pending >= maxPendingPerUser {
		return nil, ErrTooManyPending
	}

	swap := &model.SwapRequest{
		RequesterID:          requesterID,
		TargetID:             req.TargetID,
		AssignmentType:       req.AssignmentType,
		OriginalAssignmentID: req.OriginalAssignmentID,
		ProposedAssignmentID: req.ProposedAssignmentID,
		Reason:               req.Reason,
		Status:               model.SwapStatusPending,
	}
	if err := s.repo.Swap.Create(ctx, swap); err != nil {
		s.logger.Error("swap create failed", zap.Uint("requester_id", requesterID), zap.Error(err))
		return nil, err
	}

	if err := notify(ctx, s.repo, swap.TargetID, model.NotificationSwapRequested,
		"You were named in a swap request",
		map[string]any{"swap_request_id": swap.ID, "assignment_type": swap.AssignmentType}); err != nil {
		s.logger.Warn("swap create notification failed", zap.Uint("swap_id", swap.ID), zap.Error(err))
	}
	return toSwapResponse(swap), nil
}

func (s *swapService) GetByID(ctx context.Context, id uint, callerID uint, callerRole string) (*dto.SwapResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}
	// Visible to the two parties and to reviewer-capable roles only.
	if swap.RequesterID != callerID && swap.TargetID != callerID && !Can(callerRole, ActionReviewRequests) {
		return nil, ErrSwapNotOwner
	}
	return toSwapResponse(swap), nil
}

// Review decides a pending swap. The request row is locked first, so a
// concurrent second review observes the final status and fails with
// ErrSwapNotPending instead of double-applying. On approval the eligibility
// checks from Create are re-run against current state; anything that drifted
// since filing rejects the review with a conflict the caller can surface.
func (s *swapService) Review(ctx context.Context, id uint, req *dto.ReviewSwapRequest, reviewerID uint) (*dto.SwapResponse, error) {
	var swap *model.SwapRequest
	err := s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		var err error
		swap, err = txRepo.Swap.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapNotFound
			}
			return err
		}
		if swap.Status != model.SwapStatusPending {
			return ErrSwapNotPending
		}

		now := time.Now()
		swap.ReviewerID = &reviewerID
		swap.ReviewerNotes = req.ReviewerNotes
		swap.ReviewedAt = &now

		if req.Status == model.SwapStatusRejected {
			swap.Status = model.SwapStatusRejected
			return txRepo.Swap.Update(ctx, swap)
		}

		if err := applySwap(ctx, txRepo, swap); err != nil {
			return err
		}
		swap.Status = model.SwapStatusCompleted
		return txRepo.Swap.Update(ctx, swap)
	})
	if err != nil {
		return nil, err
	}

	s.notifyReviewed(ctx, swap)
	return toSwapResponse(swap), nil
}

// applySwap transfers the original assignment to the target and, for a
// two-way swap, the proposed assignment back to the requester. Runs inside
// the review transaction.
func applySwap(ctx context.Context, txRepo *repository.Repository, swap *model.SwapRequest) error {
	owner, courseID, err := assignmentOwner(ctx, txRepo, swap.AssignmentType, swap.OriginalAssignmentID)
	if err != nil {
		return err
	}
	if owner == nil || *owner != swap.RequesterID {
		return ErrSwapNotOwner
	}
	if _, err := txRepo.CourseTA.GetActivePair(ctx, courseID, swap.TargetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSwapTargetIneligible
		}
		return err
	}

	if err := transferAssignment(ctx, txRepo, swap.AssignmentType, swap.OriginalAssignmentID, swap.RequesterID, swap.TargetID); err != nil {
		return err
	}
	if swap.ProposedAssignmentID != nil {
		return transferAssignment(ctx, txRepo, swap.AssignmentType, *swap.ProposedAssignmentID, swap.TargetID, swap.RequesterID)
	}
	return nil
}

// transferAssignment moves one assignment from `from` to `to`, verifying
// ownership under a row lock so a racing reassignment cannot be overwritten.
func transferAssignment(ctx context.Context, txRepo *repository.Repository, assignmentType string, assignmentID, from, to uint) error {
	switch assignmentType {
	case model.SwapAssignmentTask:
		task, err := txRepo.Task.GetByIDForUpdate(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapAssignmentNotFound
			}
			return err
		}
		if task.AssignedTo == nil || *task.AssignedTo != from {
			return ErrSwapNotOwner
		}
		return txRepo.Task.Reassign(ctx, task, to)
	case model.SwapAssignmentExam:
		room, err := txRepo.Exam.GetRoomByIDForUpdate(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapAssignmentNotFound
			}
			return err
		}
		if room.ProctorID == nil || *room.ProctorID != from {
			return ErrSwapNotOwner
		}
		room.ProctorID = &to
		return txRepo.Exam.UpdateRoom(ctx, room)
	default:
		return ErrSwapAssignmentNotFound
	}
}

// Cancel withdraws a pending request. The row keeps its reviewed_at stamp so
// every non-pending request records when it left the queue; reviewer stays
// empty because nobody decided it.
func (s *swapService) Cancel(ctx context.Context, id uint, callerID uint) error {
	return s.repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		swap, err := txRepo.Swap.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapNotFound
			}
			return err
		}
		if swap.RequesterID != callerID {
			return ErrSwapNotOwner
		}
		if swap.Status != model.SwapStatusPending {
			return ErrSwapNotPending
		}
		now := time.Now()
		swap.Status = model.SwapStatusCancelled
		swap.ReviewedAt = &now
		return txRepo.Swap.Update(ctx, swap)
	})
}

func (s *swapService) ListMine(ctx context.Context, userID uint) ([]dto.SwapResponse, error) {
	swaps, err := s.repo.Swap.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSwapResponses(swaps), nil
}

func (s *swapService) ListPending(ctx context.Context) ([]dto.SwapResponse, error) {
	swaps, err := s.repo.Swap.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return toSwapResponses(swaps), nil
}

// ListEligibleTargets returns the active TAs on the assignment's course,
// minus the caller, each with the real weekly hours from their active roster
// rows so the requester can pick someone with slack.
func (s *swapService) ListEligibleTargets(ctx context.Context, req *dto.EligibleTargetsRequest, callerID uint) ([]dto.EligibleTargetResponse, error) {
	owner, courseID, err := assignmentOwner(ctx, s.repo, req.AssignmentType, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if owner == nil || *owner != callerID {
		return nil, ErrSwapNotOwner
	}

	rows, err := s.repo.CourseTA.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EligibleTargetResponse, 0, len(rows))
	for i := range rows {
		if rows[i].TaID == callerID || rows[i].Ta == nil {
			continue
		}
		hours, err := s.repo.CourseTA.SumActiveHours(ctx, rows[i].TaID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.EligibleTargetResponse{
			User:               *toUserResponse(rows[i].Ta),
			ActiveHoursPerWeek: hours,
		})
	}
	return result, nil
}

func (s *swapService) notifyReviewed(ctx context.Context, swap *model.SwapRequest) {
	payload := map[string]any{
		"swap_request_id": swap.ID,
		"status":          swap.Status,
		"assignment_type": swap.AssignmentType,
	}
	for _, userID := range []uint{swap.RequesterID, swap.TargetID} {
		if err := notify(ctx, s.repo, userID, model.NotificationSwapReviewed,
			"Swap request "+swap.Status, payload); err != nil {
			s.logger.Warn("swap review notification failed",
				zap.Uint("swap_id", swap.ID), zap.Error(err))
		}
	}
}

func toSwapResponses(swaps []model.SwapRequest) []dto.SwapResponse {
	result := make([]dto.SwapResponse, 0, len(swaps))
	for i := range swaps {
		result = append(result, *toSwapResponse(&swaps[i]))
	}
	return result
}

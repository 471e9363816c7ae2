package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	"github.com/kbc0/TA-Management-System-sub000/internal/repository"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInstitutionIDExists = errors.New("institution id already registered")
	ErrEmailExists         = errors.New("email already registered")
	ErrUserSelfRoleChange  = errors.New("cannot change your own role")
	ErrUserSelfDelete      = errors.New("cannot delete yourself")
	ErrNoPermission        = errors.New("not allowed")
)

// UserService handles user administration and profile edits.
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID uint) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, callerID uint, callerRole string) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID uint) error
	AssignRole(ctx context.Context, id uint, req *dto.AssignRoleRequest, callerID uint) error
	ResetPassword(ctx context.Context, id, callerID uint) (*dto.ResetPasswordResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID uint) (*dto.CreateUserResponse, error) {
	if _, err := s.repo.User.GetByInstitutionID(ctx, req.InstitutionID); err == nil {
		return nil, ErrInstitutionIDExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("temp password generation failed", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		InstitutionID: req.InstitutionID,
		Email:         req.Email,
		PasswordHash:  string(hash),
		FullName:      req.FullName,
		Role:          req.Role,
		Department:    req.Department,
		MaxHours:      req.MaxHours,
	}
	user.CreatedBy = &callerID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, err
	}

	return &dto.CreateUserResponse{
		User:         toUserResponse(user),
		TempPassword: tempPassword,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		Role:       req.Role,
		Department: req.Department,
		Keyword:    req.Keyword,
	}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("user list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, callerID uint, callerRole string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Admins may edit anyone; everyone else only themselves.
	if !Can(callerRole, ActionManageUsers) && callerID != id {
		return nil, ErrNoPermission
	}

	if req.Email != nil {
		existing, err := s.repo.User.GetByEmail(ctx, *req.Email)
		if err == nil && existing.ID != id {
			return nil, ErrEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.MaxHours != nil {
		user.MaxHours = req.MaxHours
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("user update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id, callerID uint) error {
	if id == callerID {
		return ErrUserSelfDelete
	}

	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.User.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("user delete failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) AssignRole(ctx context.Context, id uint, req *dto.AssignRoleRequest, callerID uint) error {
	if id == callerID {
		return ErrUserSelfRoleChange
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.Role = req.Role
	user.UpdatedBy = &callerID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("role assignment failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, id, callerID uint) (*dto.ResetPasswordResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("temp password generation failed", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.UpdatedBy = &callerID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("password reset failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// generateTempPassword builds a random password containing at least one
// letter and one digit. Ambiguous characters (0/O, 1/l) are left out.
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 8
	}

	result := make([]byte, length)

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	// Shuffle so the guaranteed characters don't sit at a fixed position.
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}

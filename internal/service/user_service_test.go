package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

func setupUserService() (UserService, *testRepos) {
	repos := newTestRepos()
	return NewUserService(repos.repo, zap.NewNop()), repos
}

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(1, model.RoleAdmin)

	result, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		InstitutionID: "20240042",
		Email:         "new.ta@test.edu",
		FullName:      "New TA",
		Role:          model.RoleTA,
	}, 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.User.ID == 0 || result.TempPassword == "" {
		t.Errorf("unexpected result: %+v", result)
	}

	// The stored hash matches the returned temporary password.
	stored := repos.user.users[result.User.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(result.TempPassword)); err != nil {
		t.Errorf("temp password does not match stored hash: %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, repos := setupUserService()
	existing := repos.addUser(2, model.RoleTA)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		InstitutionID: "20240099",
		Email:         existing.Email,
		FullName:      "Dup",
		Role:          model.RoleTA,
	}, 1)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserService_Update_SelfAllowed(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(2, model.RoleTA)

	updated, err := svc.Update(context.Background(), 2,
		&dto.UpdateUserRequest{FullName: strPtr("Renamed TA")}, 2, model.RoleTA)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.FullName != "Renamed TA" {
		t.Errorf("expected renamed user, got %+v", updated)
	}
}

func TestUserService_Update_OtherForbidden(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(2, model.RoleTA)
	repos.addUser(3, model.RoleTA)

	_, err := svc.Update(context.Background(), 2,
		&dto.UpdateUserRequest{FullName: strPtr("Hijacked")}, 3, model.RoleTA)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("expected ErrNoPermission, got %v", err)
	}
}

func TestUserService_Update_AdminMayEditAnyone(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(1, model.RoleAdmin)
	repos.addUser(2, model.RoleTA)

	if _, err := svc.Update(context.Background(), 2,
		&dto.UpdateUserRequest{Department: strPtr("CS")}, 1, model.RoleAdmin); err != nil {
		t.Errorf("admin Update failed: %v", err)
	}
}

func TestUserService_AssignRole_Self(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(1, model.RoleAdmin)

	err := svc.AssignRole(context.Background(), 1, &dto.AssignRoleRequest{Role: model.RoleTA}, 1)
	if !errors.Is(err, ErrUserSelfRoleChange) {
		t.Errorf("expected ErrUserSelfRoleChange, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(1, model.RoleAdmin)
	repos.addUser(2, model.RoleTA)

	if err := svc.Delete(context.Background(), 2, 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repos.user.GetByID(context.Background(), 2); err == nil {
		t.Error("expected the user to be gone")
	}
}

func TestUserService_Delete_Self(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(1, model.RoleAdmin)

	if err := svc.Delete(context.Background(), 1, 1); !errors.Is(err, ErrUserSelfDelete) {
		t.Errorf("expected ErrUserSelfDelete, got %v", err)
	}
}

func TestUserService_ResetPassword(t *testing.T) {
	svc, repos := setupUserService()
	repos.addUser(1, model.RoleAdmin)
	user := repos.addUser(2, model.RoleTA)
	user.PasswordHash = "$2a$10$invalidatedbyreset"

	result, err := svc.ResetPassword(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(repos.user.users[2].PasswordHash), []byte(result.TempPassword)); err != nil {
		t.Errorf("new password does not match stored hash: %v", err)
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := generateTempPassword(10)
	if err != nil {
		t.Fatalf("generateTempPassword: %v", err)
	}
	if len(pw) != 10 {
		t.Errorf("expected 10 characters, got %d", len(pw))
	}
	hasLetter, hasDigit := false, false
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		t.Errorf("expected a letter and a digit, got %q", pw)
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	pkgerrors "github.com/kbc0/TA-Management-System-sub000/pkg/errors"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── mock services ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ uint) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ uint, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

type mockTaskService struct {
	createResult    *dto.TaskResponse
	createErr       error
	getResult       *dto.TaskResponse
	getErr          error
	updateResult    *dto.TaskResponse
	updateErr       error
	setStatusResult *dto.TaskResponse
	setStatusErr    error
	deleteErr       error
	listResult      []dto.TaskResponse
	listErr         error
}

func (m *mockTaskService) Create(_ context.Context, _ *dto.CreateTaskRequest, _ uint) (*dto.TaskResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTaskService) GetByID(_ context.Context, _ uint) (*dto.TaskResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTaskService) Update(_ context.Context, _ uint, _ *dto.UpdateTaskRequest, _ uint) (*dto.TaskResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTaskService) SetStatus(_ context.Context, _ uint, _ string, _ uint, _ string) (*dto.TaskResponse, error) {
	return m.setStatusResult, m.setStatusErr
}
func (m *mockTaskService) Delete(_ context.Context, _ uint) error { return m.deleteErr }
func (m *mockTaskService) ListByCourse(_ context.Context, _ uint) ([]dto.TaskResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTaskService) ListByAssignee(_ context.Context, _ uint) ([]dto.TaskResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTaskService) ListUpcoming(_ context.Context, _ uint, _ int) ([]dto.TaskResponse, error) {
	return m.listResult, m.listErr
}

type mockSwapService struct {
	createResult  *dto.SwapResponse
	createErr     error
	getResult     *dto.SwapResponse
	getErr        error
	reviewResult  *dto.SwapResponse
	reviewErr     error
	cancelErr     error
	listResult    []dto.SwapResponse
	listErr       error
	targetsResult []dto.EligibleTargetResponse
	targetsErr    error
}

func (m *mockSwapService) Create(_ context.Context, _ *dto.CreateSwapRequest, _ uint) (*dto.SwapResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSwapService) GetByID(_ context.Context, _ uint, _ uint, _ string) (*dto.SwapResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSwapService) Review(_ context.Context, _ uint, _ *dto.ReviewSwapRequest, _ uint) (*dto.SwapResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockSwapService) Cancel(_ context.Context, _ uint, _ uint) error { return m.cancelErr }
func (m *mockSwapService) ListMine(_ context.Context, _ uint) ([]dto.SwapResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSwapService) ListPending(_ context.Context) ([]dto.SwapResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSwapService) ListEligibleTargets(_ context.Context, _ *dto.EligibleTargetsRequest, _ uint) ([]dto.EligibleTargetResponse, error) {
	return m.targetsResult, m.targetsErr
}

type mockLeaveService struct {
	createResult *dto.LeaveResponse
	createErr    error
	getResult    *dto.LeaveResponse
	getErr       error
	reviewResult *dto.LeaveResponse
	reviewErr    error
	cancelErr    error
	listResult   []dto.LeaveResponse
	listErr      error
}

func (m *mockLeaveService) Create(_ context.Context, _ *dto.CreateLeaveRequest, _ uint) (*dto.LeaveResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockLeaveService) GetByID(_ context.Context, _ uint, _ uint, _ string) (*dto.LeaveResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockLeaveService) Review(_ context.Context, _ uint, _ *dto.ReviewLeaveRequest, _ uint) (*dto.LeaveResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockLeaveService) Cancel(_ context.Context, _ uint, _ uint) error { return m.cancelErr }
func (m *mockLeaveService) ListMine(_ context.Context, _ uint) ([]dto.LeaveResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockLeaveService) ListPending(_ context.Context) ([]dto.LeaveResponse, error) {
	return m.listResult, m.listErr
}

type mockUserService struct {
	createResult *dto.CreateUserResponse
	createErr    error
	getResult    *dto.UserResponse
	getErr       error
	listResult   []dto.UserResponse
	listTotal    int64
	listErr      error
	updateResult *dto.UserResponse
	updateErr    error
	deleteErr    error
	assignErr    error
	resetResult  *dto.ResetPasswordResponse
	resetErr     error
}

func (m *mockUserService) Create(_ context.Context, _ *dto.CreateUserRequest, _ uint) (*dto.CreateUserResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockUserService) GetByID(_ context.Context, _ uint) (*dto.UserResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockUserService) List(_ context.Context, _ *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockUserService) Update(_ context.Context, _ uint, _ *dto.UpdateUserRequest, _ uint, _ string) (*dto.UserResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockUserService) Delete(_ context.Context, _, _ uint) error { return m.deleteErr }
func (m *mockUserService) AssignRole(_ context.Context, _ uint, _ *dto.AssignRoleRequest, _ uint) error {
	return m.assignErr
}
func (m *mockUserService) ResetPassword(_ context.Context, _, _ uint) (*dto.ResetPasswordResponse, error) {
	return m.resetResult, m.resetErr
}

type mockCourseService struct {
	createResult *dto.CourseResponse
	createErr    error
	getResult    *dto.CourseResponse
	getErr       error
	listResult   []dto.CourseResponse
	listTotal    int64
	listErr      error
	updateResult *dto.CourseResponse
	updateErr    error
	assignResult *dto.CourseTAResponse
	assignErr    error
	removeErr    error
	tasResult    []dto.CourseTAResponse
	tasErr       error
}

func (m *mockCourseService) Create(_ context.Context, _ *dto.CreateCourseRequest, _ uint) (*dto.CourseResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCourseService) GetByID(_ context.Context, _ uint) (*dto.CourseResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockCourseService) List(_ context.Context, _ *dto.CourseListRequest) ([]dto.CourseResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockCourseService) Update(_ context.Context, _ uint, _ *dto.UpdateCourseRequest, _ uint) (*dto.CourseResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCourseService) AssignTa(_ context.Context, _ uint, _ *dto.AssignTaRequest, _ uint) (*dto.CourseTAResponse, error) {
	return m.assignResult, m.assignErr
}
func (m *mockCourseService) RemoveTa(_ context.Context, _, _ uint) error { return m.removeErr }
func (m *mockCourseService) ListTas(_ context.Context, _ uint) ([]dto.CourseTAResponse, error) {
	return m.tasResult, m.tasErr
}
func (m *mockCourseService) ListCoursesForTa(_ context.Context, _ uint) ([]dto.CourseTAResponse, error) {
	return m.tasResult, m.tasErr
}

type mockNotificationService struct {
	listResult  []dto.NotificationResponse
	listTotal   int64
	listErr     error
	markReadErr error
	markAllErr  error
}

func (m *mockNotificationService) List(_ context.Context, _ uint, _ *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockNotificationService) MarkRead(_ context.Context, _, _ uint) error {
	return m.markReadErr
}
func (m *mockNotificationService) MarkAllRead(_ context.Context, _ uint) error {
	return m.markAllErr
}

// ── helpers ──

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// asUser injects the auth context the JWT middleware normally sets.
func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("role", role)
	}
}

// ── auth ──

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Login: "ta1@test.edu", Password: "secret123",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Login: "ta1@test.edu", Password: "wrongpass",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

// ── tasks ──

func TestTaskHandler_SetStatus_Unauthenticated(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})

	r := gin.New()
	r.PUT("/tasks/:id/status", h.SetStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/tasks/1/status", jsonBody(dto.SetTaskStatusRequest{
		Status: model.TaskStatusCompleted,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestTaskHandler_SetStatus_TransitionConflict(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{setStatusErr: service.ErrTaskStatusTransition})

	r := gin.New()
	r.Use(asUser(2, model.RoleTA))
	r.PUT("/tasks/:id/status", h.SetStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/tasks/1/status", jsonBody(dto.SetTaskStatusRequest{
		Status: model.TaskStatusCompleted,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14104 {
		t.Errorf("expected error code 14104, got %d", resp.Code)
	}
}

func TestTaskHandler_SetStatus_NotOwner(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{setStatusErr: service.ErrTaskNotOwnerOrManager})

	r := gin.New()
	r.Use(asUser(2, model.RoleTA))
	r.PUT("/tasks/:id/status", h.SetStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/tasks/1/status", jsonBody(dto.SetTaskStatusRequest{
		Status: model.TaskStatusCancelled,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestTaskHandler_Get_BadID(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})

	r := gin.New()
	r.GET("/tasks/:id", h.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tasks/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ── swaps ──

func TestSwapHandler_Create_SelfTarget(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{createErr: service.ErrSwapSelfTarget})

	r := gin.New()
	r.Use(asUser(2, model.RoleTA))
	r.POST("/swaps", h.Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/swaps", jsonBody(dto.CreateSwapRequest{
		TargetID: 2, AssignmentType: model.SwapAssignmentTask, OriginalAssignmentID: 1,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16104 {
		t.Errorf("expected error code 16104, got %d", resp.Code)
	}
}

func TestSwapHandler_Review_NotPending(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{reviewErr: service.ErrSwapNotPending})

	r := gin.New()
	r.Use(asUser(7, model.RoleStaff))
	r.PUT("/swaps/:id/review", h.Review)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/swaps/1/review", jsonBody(dto.ReviewSwapRequest{
		Status: model.SwapStatusApproved,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16108 {
		t.Errorf("expected error code 16108, got %d", resp.Code)
	}
}

// Ownership drift detected during review is a conflict, not a permission
// failure.
func TestSwapHandler_Review_OwnerDriftConflict(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{reviewErr: service.ErrSwapNotOwner})

	r := gin.New()
	r.Use(asUser(7, model.RoleStaff))
	r.PUT("/swaps/:id/review", h.Review)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/swaps/1/review", jsonBody(dto.ReviewSwapRequest{
		Status: model.SwapStatusApproved,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16103 {
		t.Errorf("expected error code 16103, got %d", resp.Code)
	}
}

func TestSwapHandler_Create_NotOwnerForbidden(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{createErr: service.ErrSwapNotOwner})

	r := gin.New()
	r.Use(asUser(2, model.RoleTA))
	r.POST("/swaps", h.Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/swaps", jsonBody(dto.CreateSwapRequest{
		TargetID: 3, AssignmentType: model.SwapAssignmentTask, OriginalAssignmentID: 1,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// A TA who is neither party to a swap cannot read it.
func TestSwapHandler_Get_StrangerForbidden(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{getErr: service.ErrSwapNotOwner})

	r := gin.New()
	r.Use(asUser(9, model.RoleTA))
	r.GET("/swaps/:id", h.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/swaps/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16103 {
		t.Errorf("expected error code 16103, got %d", resp.Code)
	}
}

// ── leaves ──

func TestLeaveHandler_Get_StrangerForbidden(t *testing.T) {
	h := NewLeaveHandler(&mockLeaveService{getErr: service.ErrLeaveNotOwner})

	r := gin.New()
	r.Use(asUser(9, model.RoleTA))
	r.GET("/leaves/:id", h.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/leaves/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

// ── users ──

func TestUserHandler_Update_ConcurrentConflict(t *testing.T) {
	h := NewUserHandler(&mockUserService{updateErr: pkgerrors.ErrOptimisticLock})

	r := gin.New()
	r.Use(asUser(1, model.RoleAdmin))
	r.PATCH("/users/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/users/2", jsonBody(dto.UpdateUserRequest{}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12106 {
		t.Errorf("expected error code 12106, got %d", resp.Code)
	}
}

// ── courses ──

func TestCourseHandler_Update_ConcurrentConflict(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{updateErr: pkgerrors.ErrOptimisticLock})

	r := gin.New()
	r.Use(asUser(1, model.RoleAdmin))
	r.PATCH("/courses/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/courses/2", jsonBody(dto.UpdateCourseRequest{}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13107 {
		t.Errorf("expected error code 13107, got %d", resp.Code)
	}
}

// ── notifications ──

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{
		markReadErr: service.ErrNotificationNotFound,
	})

	r := gin.New()
	r.Use(asUser(2, model.RoleTA))
	r.PUT("/notifications/:id/read", h.MarkRead)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/notifications/99/read", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 18101 {
		t.Errorf("expected error code 18101, got %d", resp.Code)
	}
}

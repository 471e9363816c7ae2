package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kbc0/TA-Management-System-sub000/internal/model"
	"github.com/kbc0/TA-Management-System-sub000/internal/repository"
	pkgerrors "github.com/kbc0/TA-Management-System-sub000/pkg/errors"
)

// Map-backed repository mocks. A missing row reads as gorm.ErrRecordNotFound,
// matching the GORM implementations. IDs are assigned sequentially on create.

// ── users ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uint]*model.User{}, nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	} else if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByInstitutionID(_ context.Context, institutionID string) (*model.User, error) {
	for _, u := range m.users {
		if u.InstitutionID == institutionID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	existing, ok := m.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if existing.Version != user.Version {
		return pkgerrors.ErrOptimisticLock
	}
	user.Version++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint, _ uint) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.Department != "" && u.Department != filters.Department {
				continue
			}
			if filters.Keyword != "" &&
				!strings.Contains(u.FullName, filters.Keyword) &&
				!strings.Contains(u.Email, filters.Keyword) {
				continue
			}
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── courses ──

type mockCourseRepo struct {
	courses map[uint]*model.Course
	nextID  uint
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: map[uint]*model.Course{}, nextID: 1}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.ID == 0 {
		course.ID = m.nextID
		m.nextID++
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id uint) (*model.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockCourseRepo) GetByCodeAndSemester(_ context.Context, code, semester string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.Code == code && c.Semester == semester {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	existing, ok := m.courses[course.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if existing.Version != course.Version {
		return pkgerrors.ErrOptimisticLock
	}
	course.Version++
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) List(_ context.Context, filters *repository.CourseListFilters, offset, limit int) ([]model.Course, int64, error) {
	var all []model.Course
	for _, c := range m.courses {
		if filters != nil {
			if filters.Semester != "" && c.Semester != filters.Semester {
				continue
			}
			if filters.Department != "" && c.Department != filters.Department {
				continue
			}
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── course roster ──

type mockCourseTARepo struct {
	rows   map[uint]*model.CourseTA
	users  *mockUserRepo
	nextID uint
}

func newMockCourseTARepo(users *mockUserRepo) *mockCourseTARepo {
	return &mockCourseTARepo{rows: map[uint]*model.CourseTA{}, users: users, nextID: 1}
}

func (m *mockCourseTARepo) Create(_ context.Context, row *model.CourseTA) error {
	if row.ID == 0 {
		row.ID = m.nextID
		m.nextID++
	}
	if row.Status == "" {
		row.Status = model.CourseTAStatusActive
	}
	m.rows[row.ID] = row
	return nil
}

func (m *mockCourseTARepo) GetActivePair(_ context.Context, courseID, taID uint) (*model.CourseTA, error) {
	for _, r := range m.rows {
		if r.CourseID == courseID && r.TaID == taID && r.Status == model.CourseTAStatusActive {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseTARepo) Remove(_ context.Context, courseID, taID uint) error {
	for _, r := range m.rows {
		if r.CourseID == courseID && r.TaID == taID && r.Status == model.CourseTAStatusActive {
			now := time.Now()
			r.Status = model.CourseTAStatusEnded
			r.EndDate = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCourseTARepo) ListByCourse(_ context.Context, courseID uint) ([]model.CourseTA, error) {
	var out []model.CourseTA
	for _, r := range m.rows {
		if r.CourseID == courseID && r.Status == model.CourseTAStatusActive {
			row := *r
			if m.users != nil {
				if u, ok := m.users.users[r.TaID]; ok {
					row.Ta = u
				}
			}
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCourseTARepo) ListByTa(_ context.Context, taID uint) ([]model.CourseTA, error) {
	var out []model.CourseTA
	for _, r := range m.rows {
		if r.TaID == taID && r.Status == model.CourseTAStatusActive {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCourseTARepo) SumActiveHours(_ context.Context, taID uint) (int, error) {
	sum := 0
	for _, r := range m.rows {
		if r.TaID == taID && r.Status == model.CourseTAStatusActive {
			sum += r.HoursPerWeek
		}
	}
	return sum, nil
}

// ── tasks ──

type mockTaskRepo struct {
	tasks   map[uint]*model.Task
	history []model.TaskAssignment
	nextID  uint
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: map[uint]*model.Task{}, nextID: 1}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.ID == 0 {
		task.ID = m.nextID
		m.nextID++
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id uint) (*model.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (m *mockTaskRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.Task, error) {
	return m.GetByID(ctx, id)
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id uint) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) Reassign(_ context.Context, task *model.Task, newAssignee uint) error {
	task.AssignedTo = &newAssignee
	m.tasks[task.ID] = task
	m.history = append(m.history, model.TaskAssignment{
		TaskID:     task.ID,
		UserID:     newAssignee,
		AssignedAt: time.Now(),
	})
	return nil
}

func (m *mockTaskRepo) ListByCourse(_ context.Context, courseID uint) ([]model.Task, error) {
	var out []model.Task
	for _, t := range m.tasks {
		if t.CourseID == courseID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockTaskRepo) ListByAssignee(_ context.Context, userID uint) ([]model.Task, error) {
	var out []model.Task
	for _, t := range m.tasks {
		if t.AssignedTo != nil && *t.AssignedTo == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockTaskRepo) ListUpcoming(_ context.Context, userID uint, limit int) ([]model.Task, error) {
	now := time.Now()
	var out []model.Task
	for _, t := range m.tasks {
		if t.AssignedTo == nil || *t.AssignedTo != userID {
			continue
		}
		if t.Status != model.TaskStatusActive || t.DueDate == nil || t.DueDate.Before(now) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockTaskRepo) History(_ context.Context, taskID uint) ([]model.TaskAssignment, error) {
	var out []model.TaskAssignment
	for _, h := range m.history {
		if h.TaskID == taskID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) CountsByAssignee(_ context.Context, userID uint) (*repository.TaskStatusCounts, error) {
	counts := &repository.TaskStatusCounts{}
	for _, t := range m.tasks {
		if t.AssignedTo == nil || *t.AssignedTo != userID {
			continue
		}
		switch t.Status {
		case model.TaskStatusActive:
			counts.Active++
		case model.TaskStatusCompleted:
			counts.Completed++
		case model.TaskStatusCancelled:
			counts.Cancelled++
		}
	}
	return counts, nil
}

// ── leave requests ──

type mockLeaveRepo struct {
	rows   map[uint]*model.LeaveRequest
	nextID uint
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{rows: map[uint]*model.LeaveRequest{}, nextID: 1}
}

func (m *mockLeaveRepo) Create(_ context.Context, req *model.LeaveRequest) error {
	if req.ID == 0 {
		req.ID = m.nextID
		m.nextID++
	}
	m.rows[req.ID] = req
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id uint) (*model.LeaveRequest, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockLeaveRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.LeaveRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockLeaveRepo) Update(_ context.Context, req *model.LeaveRequest) error {
	if _, ok := m.rows[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.rows[req.ID] = req
	return nil
}

func (m *mockLeaveRepo) Delete(_ context.Context, id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *mockLeaveRepo) ListByRequester(_ context.Context, requesterID uint) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	for _, r := range m.rows {
		if r.RequesterID == requesterID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockLeaveRepo) ListPending(_ context.Context) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	for _, r := range m.rows {
		if r.Status == model.LeaveStatusPending {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockLeaveRepo) CountPendingByRequester(_ context.Context, requesterID uint) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.RequesterID == requesterID && r.Status == model.LeaveStatusPending {
			n++
		}
	}
	return n, nil
}

// ── swap requests ──

type mockSwapRepo struct {
	rows   map[uint]*model.SwapRequest
	nextID uint
}

func newMockSwapRepo() *mockSwapRepo {
	return &mockSwapRepo{rows: map[uint]*model.SwapRequest{}, nextID: 1}
}

func (m *mockSwapRepo) Create(_ context.Context, req *model.SwapRequest) error {
	if req.ID == 0 {
		req.ID = m.nextID
		m.nextID++
	}
	m.rows[req.ID] = req
	return nil
}

func (m *mockSwapRepo) GetByID(_ context.Context, id uint) (*model.SwapRequest, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockSwapRepo) GetByIDForUpdate(ctx context.Context, id uint) (*model.SwapRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSwapRepo) Update(_ context.Context, req *model.SwapRequest) error {
	if _, ok := m.rows[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.rows[req.ID] = req
	return nil
}

func (m *mockSwapRepo) Delete(_ context.Context, id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *mockSwapRepo) ListByUser(_ context.Context, userID uint) ([]model.SwapRequest, error) {
	var out []model.SwapRequest
	for _, r := range m.rows {
		if r.RequesterID == userID || r.TargetID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockSwapRepo) ListPending(_ context.Context) ([]model.SwapRequest, error) {
	var out []model.SwapRequest
	for _, r := range m.rows {
		if r.Status == model.SwapStatusPending {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockSwapRepo) CountPendingByRequester(_ context.Context, requesterID uint) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.RequesterID == requesterID && r.Status == model.SwapStatusPending {
			n++
		}
	}
	return n, nil
}

// ── exams ──

type mockExamRepo struct {
	exams      map[uint]*model.Exam
	rooms      map[uint]*model.ExamRoom
	nextExamID uint
	nextRoomID uint
}

func newMockExamRepo() *mockExamRepo {
	return &mockExamRepo{
		exams:      map[uint]*model.Exam{},
		rooms:      map[uint]*model.ExamRoom{},
		nextExamID: 1,
		nextRoomID: 1,
	}
}

func (m *mockExamRepo) Create(_ context.Context, exam *model.Exam) error {
	if exam.ID == 0 {
		exam.ID = m.nextExamID
		m.nextExamID++
	}
	m.exams[exam.ID] = exam
	for i := range exam.Rooms {
		room := &exam.Rooms[i]
		if room.ID == 0 {
			room.ID = m.nextRoomID
			m.nextRoomID++
		}
		room.ExamID = exam.ID
		room.Exam = exam
		m.rooms[room.ID] = room
	}
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id uint) (*model.Exam, error) {
	e, ok := m.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (m *mockExamRepo) ListByCourse(_ context.Context, courseID uint) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range m.exams {
		if e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockExamRepo) GetRoomByID(_ context.Context, id uint) (*model.ExamRoom, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.Exam == nil {
		r.Exam = m.exams[r.ExamID]
	}
	return r, nil
}

func (m *mockExamRepo) GetRoomByIDForUpdate(ctx context.Context, id uint) (*model.ExamRoom, error) {
	return m.GetRoomByID(ctx, id)
}

func (m *mockExamRepo) UpdateRoom(_ context.Context, room *model.ExamRoom) error {
	if _, ok := m.rooms[room.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.rooms[room.ID] = room
	return nil
}

func (m *mockExamRepo) ListRoomsByProctor(_ context.Context, proctorID uint) ([]model.ExamRoom, error) {
	var out []model.ExamRoom
	for _, r := range m.rooms {
		if r.ProctorID != nil && *r.ProctorID == proctorID {
			row := *r
			if row.Exam == nil {
				row.Exam = m.exams[r.ExamID]
			}
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── notifications ──

type mockNotificationRepo struct {
	rows   map[uint]*model.Notification
	nextID uint
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{rows: map[uint]*model.Notification{}, nextID: 1}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.ID == 0 {
		n.ID = m.nextID
		m.nextID++
	}
	m.rows[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID uint, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var all []model.Notification
	for _, n := range m.rows {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID uint) (int64, error) {
	n, ok := m.rows[id]
	if !ok || n.UserID != userID {
		return 0, nil
	}
	n.IsRead = true
	return 1, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID uint) error {
	for _, n := range m.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── shared fixture ──

// testRepos bundles all mocks behind one Repository. The aggregate carries no
// db, so Atomic runs its function directly.
type testRepos struct {
	repo         *repository.Repository
	user         *mockUserRepo
	course       *mockCourseRepo
	courseTA     *mockCourseTARepo
	task         *mockTaskRepo
	leave        *mockLeaveRepo
	swap         *mockSwapRepo
	exam         *mockExamRepo
	notification *mockNotificationRepo
}

func newTestRepos() *testRepos {
	user := newMockUserRepo()
	t := &testRepos{
		user:         user,
		course:       newMockCourseRepo(),
		courseTA:     newMockCourseTARepo(user),
		task:         newMockTaskRepo(),
		leave:        newMockLeaveRepo(),
		swap:         newMockSwapRepo(),
		exam:         newMockExamRepo(),
		notification: newMockNotificationRepo(),
	}
	t.repo = &repository.Repository{
		User:         t.user,
		Course:       t.course,
		CourseTA:     t.courseTA,
		Task:         t.task,
		Leave:        t.leave,
		Swap:         t.swap,
		Exam:         t.exam,
		Notification: t.notification,
	}
	return t
}

func (t *testRepos) addUser(id uint, role string) *model.User {
	u := &model.User{
		InstitutionID: "inst-" + string(rune('0'+id)),
		Email:         "user" + string(rune('0'+id)) + "@test.edu",
		FullName:      "User " + string(rune('0'+id)),
		Role:          role,
	}
	u.ID = id
	t.user.users[id] = u
	if id >= t.user.nextID {
		t.user.nextID = id + 1
	}
	return u
}

func (t *testRepos) addRoster(courseID, taID uint, hours int) *model.CourseTA {
	row := &model.CourseTA{
		CourseID:     courseID,
		TaID:         taID,
		HoursPerWeek: hours,
		Status:       model.CourseTAStatusActive,
	}
	_ = t.courseTA.Create(context.Background(), row)
	return row
}

func (t *testRepos) addTask(id, courseID uint, assignee *uint, status string) *model.Task {
	task := &model.Task{
		Title:      "Task",
		TaskType:   model.TaskTypeGrading,
		CourseID:   courseID,
		Status:     status,
		AssignedTo: assignee,
	}
	task.ID = id
	t.task.tasks[id] = task
	if id >= t.task.nextID {
		t.task.nextID = id + 1
	}
	return task
}

func uintPtr(v uint) *uint { return &v }

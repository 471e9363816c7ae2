package service

import (
	"encoding/json"

	"github.com/kbc0/TA-Management-System-sub000/internal/dto"
	"github.com/kbc0/TA-Management-System-sub000/internal/model"
)

// Model-to-DTO mappers shared by the services in this package.

func toUserResponse(u *model.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		InstitutionID: u.InstitutionID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          u.Role,
		Department:    u.Department,
		MaxHours:      u.MaxHours,
	}
}

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	if c == nil {
		return nil
	}
	return &dto.CourseResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		Semester:     c.Semester,
		Department:   c.Department,
		InstructorID: c.InstructorID,
		Instructor:   toUserResponse(c.Instructor),
	}
}

func toCourseTAResponse(row *model.CourseTA) *dto.CourseTAResponse {
	if row == nil {
		return nil
	}
	return &dto.CourseTAResponse{
		ID:           row.ID,
		CourseID:     row.CourseID,
		TaID:         row.TaID,
		HoursPerWeek: row.HoursPerWeek,
		Status:       row.Status,
		Ta:           toUserResponse(row.Ta),
		Course:       toCourseResponse(row.Course),
	}
}

func toTaskResponse(t *model.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		TaskType:    t.TaskType,
		CourseID:    t.CourseID,
		DueDate:     t.DueDate,
		Duration:    t.Duration,
		Status:      t.Status,
		CreatedBy:   t.CreatedBy,
		AssignedTo:  t.AssignedTo,
		Assignee:    toUserResponse(t.Assignee),
		Course:      toCourseResponse(t.Course),
	}
}

func toLeaveResponse(l *model.LeaveRequest) *dto.LeaveResponse {
	if l == nil {
		return nil
	}
	return &dto.LeaveResponse{
		ID:            l.ID,
		RequesterID:   l.RequesterID,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		DurationDays:  l.DurationDays,
		Reason:        l.Reason,
		Status:        l.Status,
		ReviewerID:    l.ReviewerID,
		ReviewerNotes: l.ReviewerNotes,
		ReviewedAt:    l.ReviewedAt,
		Requester:     toUserResponse(l.Requester),
	}
}

func toSwapResponse(s *model.SwapRequest) *dto.SwapResponse {
	if s == nil {
		return nil
	}
	return &dto.SwapResponse{
		ID:                   s.ID,
		RequesterID:          s.RequesterID,
		TargetID:             s.TargetID,
		AssignmentType:       s.AssignmentType,
		OriginalAssignmentID: s.OriginalAssignmentID,
		ProposedAssignmentID: s.ProposedAssignmentID,
		Reason:               s.Reason,
		Status:               s.Status,
		ReviewerID:           s.ReviewerID,
		ReviewerNotes:        s.ReviewerNotes,
		ReviewedAt:           s.ReviewedAt,
		Requester:            toUserResponse(s.Requester),
		Target:               toUserResponse(s.Target),
	}
}

func toExamResponse(e *model.Exam) *dto.ExamResponse {
	if e == nil {
		return nil
	}
	resp := &dto.ExamResponse{
		ID:       e.ID,
		CourseID: e.CourseID,
		Name:     e.Name,
		ExamDate: e.ExamDate,
		Duration: e.Duration,
	}
	for i := range e.Rooms {
		resp.Rooms = append(resp.Rooms, *toExamRoomResponse(&e.Rooms[i]))
	}
	return resp
}

func toExamRoomResponse(r *model.ExamRoom) *dto.ExamRoomResponse {
	if r == nil {
		return nil
	}
	return &dto.ExamRoomResponse{
		ID:        r.ID,
		ExamID:    r.ExamID,
		Room:      r.Room,
		Capacity:  r.Capacity,
		ProctorID: r.ProctorID,
		Proctor:   toUserResponse(r.Proctor),
	}
}

func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Payload:   json.RawMessage(n.Payload),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

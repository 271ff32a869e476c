package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/student"
)

// Result distinguishes delivered from failed sends so the caller can decide
// on its own retry policy; this service never retries.
type Result struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Service sends absence SMS and records every attempt.
type Service struct {
	client   *Client
	repo     *Repository
	students *student.Repository
}

// NewService creates a service.
func NewService(client *Client, repo *Repository, students *student.Repository) *Service {
	return &Service{client: client, repo: repo, students: students}
}

// RenderMessage builds the fixed parent-facing absence message.
func RenderMessage(studentName, session, date string) string {
	return fmt.Sprintf("Dear Parent, your ward %s was ABSENT for the %s session on %s. - Admin", studentName, session, date)
}

// NotifyAbsence sends the absence message for one student and always writes
// exactly one log row. Channel failures come back inside the Result; the
// returned error is reserved for log persistence failures.
func (s *Service) NotifyAbsence(ctx context.Context, studentID int, parentPhone, studentName, date, session string) (Result, error) {
	message := RenderMessage(studentName, session, date)

	res, sendErr := s.client.Send(ctx, parentPhone, message)

	entry := Log{
		StudentID:   studentID,
		ParentPhone: parentPhone,
		Message:     message,
		Status:      StatusFailed,
	}
	result := Result{}
	switch {
	case sendErr != nil:
		result.Detail = sendErr.Error()
		log.Printf("sms send failed for student %d: %v", studentID, sendErr)
	case !res.Accepted:
		result.Detail = "provider rejected the message"
		if res.RequestID != "" {
			entry.RequestID = &res.RequestID
			result.RequestID = res.RequestID
		}
	default:
		entry.Status = StatusSent
		result.Success = true
		if res.RequestID != "" {
			entry.RequestID = &res.RequestID
			result.RequestID = res.RequestID
		}
	}
	smsAttempts.WithLabelValues(entry.Status).Inc()

	if err := s.repo.Insert(ctx, entry); err != nil {
		return result, apperr.Storage(err)
	}
	return result, nil
}

// Trigger looks up the student and sends the absence notification.
func (s *Service) Trigger(ctx context.Context, studentID int, date, session string) (Result, error) {
	stu, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return Result{}, apperr.Storage(err)
	}
	if stu == nil {
		return Result{}, apperr.NotFound("student not found")
	}
	return s.NotifyAbsence(ctx, stu.ID, stu.ParentPhone, stu.FullName, date, session)
}

// Logs returns the notification history, newest first.
func (s *Service) Logs(ctx context.Context) ([]LogRow, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if rows == nil {
		rows = []LogRow{}
	}
	return rows, nil
}

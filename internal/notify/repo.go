package notify

import (
	"context"
	"time"

	"github.com/Sivaji4829/attendance-backend/internal/store"
)

// Delivery outcomes recorded in sms_logs.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Log is one notification attempt; exactly one row exists per attempt
// whatever the channel outcome was.
type Log struct {
	ID          int       `json:"id"`
	StudentID   int       `json:"student_id"`
	ParentPhone string    `json:"parent_phone"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	RequestID   *string   `json:"request_id,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}

// LogRow is a log joined with student identity for listings.
type LogRow struct {
	Log
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
}

// Repository persists notification logs in Postgres.
type Repository struct {
	db store.DBTX
}

// NewRepository creates a repo.
func NewRepository(db store.DBTX) *Repository {
	return &Repository{db: db}
}

// Insert writes one attempt row.
func (r *Repository) Insert(ctx context.Context, l Log) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sms_logs (student_id, parent_phone, message, status, request_id)
		VALUES ($1, $2, $3, $4, $5)
	`, l.StudentID, l.ParentPhone, l.Message, l.Status, l.RequestID)
	return err
}

// List returns all attempts, newest first.
func (r *Repository) List(ctx context.Context) ([]LogRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.student_id, l.parent_phone, l.message, l.status, l.request_id, l.sent_at,
			s.full_name, s.roll_number
		FROM sms_logs l
		JOIN students s ON l.student_id = s.id
		ORDER BY l.sent_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogRow
	for rows.Next() {
		var row LogRow
		if err := rows.Scan(&row.ID, &row.StudentID, &row.ParentPhone, &row.Message, &row.Status,
			&row.RequestID, &row.SentAt, &row.StudentName, &row.RollNumber); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

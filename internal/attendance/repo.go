package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/store"
)

// Status of a single attendance entry.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Valid returns true when the status is a supported value.
func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Record is one persisted attendance row. (student_id, date, session) is
// unique; updates are not allowed.
type Record struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Date      string    `json:"attendance_date"`
	Session   string    `json:"session"`
	Status    Status    `json:"status"`
	MarkedBy  int       `json:"marked_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportRow is a flat projection of a record joined with student and marker.
type ReportRow struct {
	ID           int    `json:"id"`
	RollNumber   string `json:"roll_number"`
	FullName     string `json:"full_name"`
	Status       Status `json:"status"`
	Date         string `json:"attendance_date"`
	Session      string `json:"session"`
	MarkedByName string `json:"marked_by_name"`
}

// SummaryRow aggregates one student's attendance within a section.
type SummaryRow struct {
	StudentID      int    `json:"student_id"`
	RollNumber     string `json:"roll_number"`
	FullName       string `json:"full_name"`
	TotalSessions  int    `json:"total_sessions"`
	PresentCount   int    `json:"present_count"`
	Percentage     string `json:"percentage"`
	BelowThreshold bool   `json:"below_threshold"`
}

const uniqueViolation = "23505"

// Repository persists attendance data in Postgres. It runs against either
// the pool or an open transaction.
type Repository struct {
	db store.DBTX
}

// NewRepository creates a repo.
func NewRepository(db store.DBTX) *Repository {
	return &Repository{db: db}
}

// Exists reports whether a record is already stored for the triple.
func (r *Repository) Exists(ctx context.Context, studentID int, date, session string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM attendance
		WHERE student_id = $1 AND attendance_date = $2 AND session = $3
		LIMIT 1
	`, studentID, date, session).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert writes a new record. The UNIQUE constraint on
// (student_id, attendance_date, session) is the authoritative duplicate
// guard; a violation surfaces as a DuplicateEntry error.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (student_id, attendance_date, session, status, marked_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rec.StudentID, rec.Date, rec.Session, rec.Status, rec.MarkedBy)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Record{}, apperr.Duplicate("attendance already submitted for student %d for this session, updates are not allowed", rec.StudentID)
		}
		return Record{}, err
	}
	return rec, nil
}

// Report returns the flat attendance rows for a date, session and section.
func (r *Repository) Report(ctx context.Context, date, session string, sectionID int) ([]ReportRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, s.roll_number, s.full_name, a.status, a.attendance_date::text, a.session, u.full_name AS marked_by_name
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN users u ON a.marked_by = u.id
		WHERE a.attendance_date = $1 AND a.session = $2 AND s.section_id = $3
		ORDER BY s.roll_number ASC
	`, date, session, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.ID, &row.RollNumber, &row.FullName, &row.Status, &row.Date, &row.Session, &row.MarkedByName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SectionCounts returns raw present/total counts per non-deleted student in
// a section, ordered by roll number. Percentage formatting happens in the
// service so it matches the per-student path.
func (r *Repository) SectionCounts(ctx context.Context, sectionID int) ([]SummaryRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			s.id,
			s.roll_number,
			s.full_name,
			COUNT(a.id) AS total_sessions,
			COALESCE(SUM(CASE WHEN a.status = 'present' THEN 1 ELSE 0 END), 0) AS present_count
		FROM students s
		LEFT JOIN attendance a ON s.id = a.student_id
		WHERE s.section_id = $1 AND s.is_deleted = false
		GROUP BY s.id, s.roll_number, s.full_name
		ORDER BY s.roll_number ASC
	`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var row SummaryRow
		if err := rows.Scan(&row.StudentID, &row.RollNumber, &row.FullName, &row.TotalSessions, &row.PresentCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// StudentCounts returns present/total counts for a single student.
func (r *Repository) StudentCounts(ctx context.Context, studentID int) (present, total int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0),
			COUNT(*)
		FROM attendance
		WHERE student_id = $1
	`, studentID).Scan(&present, &total)
	return present, total, err
}

package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/store"
)

// Student is an enrolled student. Roll number is the immutable business key;
// rows are soft-deleted, never removed.
type Student struct {
	ID          int       `json:"id"`
	RollNumber  string    `json:"roll_number"`
	FullName    string    `json:"full_name"`
	ParentPhone string    `json:"parent_phone"`
	CourseID    int       `json:"course_id"`
	YearID      int       `json:"year_id"`
	BranchID    int       `json:"branch_id"`
	SectionID   int       `json:"section_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListRow is a student joined with reference names for listings.
type ListRow struct {
	ID          int    `json:"id"`
	RollNumber  string `json:"roll_number"`
	FullName    string `json:"full_name"`
	ParentPhone string `json:"parent_phone"`
	YearName    string `json:"year_name"`
	BranchName  string `json:"branch_name"`
	SectionName string `json:"section_name"`
	CourseName  string `json:"course_name"`
}

// Filter narrows a student listing.
type Filter struct {
	YearID    int
	BranchID  int
	SectionID int
}

const uniqueViolation = "23505"

// Repository persists students in Postgres.
type Repository struct {
	db store.DBTX
}

// NewRepository creates a repo.
func NewRepository(db store.DBTX) *Repository {
	return &Repository{db: db}
}

// Create inserts a new student. A roll number collision surfaces as a
// DuplicateEntry error.
func (r *Repository) Create(ctx context.Context, s Student) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (roll_number, full_name, parent_phone, course_id, year_id, branch_id, section_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, s.RollNumber, s.FullName, s.ParentPhone, s.CourseID, s.YearID, s.BranchID, s.SectionID)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Student{}, apperr.Duplicate("roll number already exists")
		}
		return Student{}, err
	}
	return s, nil
}

// List returns non-deleted students matching the filters, ordered by roll
// number.
func (r *Repository) List(ctx context.Context, f Filter) ([]ListRow, error) {
	query := `
		SELECT s.id, s.roll_number, s.full_name, s.parent_phone,
			COALESCE(y.year_name, ''), COALESCE(b.branch_name, ''),
			COALESCE(sec.section_name, ''), COALESCE(c.course_name, '')
		FROM students s
		LEFT JOIN years y ON s.year_id = y.id
		LEFT JOIN branches b ON s.branch_id = b.id
		LEFT JOIN sections sec ON s.section_id = sec.id
		LEFT JOIN courses c ON s.course_id = c.id
		WHERE s.is_deleted = false`
	args := []any{}
	if f.YearID > 0 {
		args = append(args, f.YearID)
		query += fmt.Sprintf(" AND s.year_id = $%d", len(args))
	}
	if f.BranchID > 0 {
		args = append(args, f.BranchID)
		query += fmt.Sprintf(" AND s.branch_id = $%d", len(args))
	}
	if f.SectionID > 0 {
		args = append(args, f.SectionID)
		query += fmt.Sprintf(" AND s.section_id = $%d", len(args))
	}
	query += " ORDER BY s.roll_number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		if err := rows.Scan(&row.ID, &row.RollNumber, &row.FullName, &row.ParentPhone,
			&row.YearName, &row.BranchName, &row.SectionName, &row.CourseName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetByID returns a non-deleted student, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id int) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, roll_number, full_name, parent_phone, course_id, year_id, branch_id, section_id, created_at
		FROM students
		WHERE id = $1 AND is_deleted = false
	`, id)
	var s Student
	if err := row.Scan(&s.ID, &s.RollNumber, &s.FullName, &s.ParentPhone,
		&s.CourseID, &s.YearID, &s.BranchID, &s.SectionID, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// SoftDelete flags a student deleted, preserving historical joins.
func (r *Repository) SoftDelete(ctx context.Context, id int) (bool, error) {
	var deleted int
	err := r.db.QueryRowContext(ctx, `
		UPDATE students SET is_deleted = true WHERE id = $1 AND is_deleted = false
		RETURNING id
	`, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

package academic

import (
	"context"
	"fmt"

	"github.com/Sivaji4829/attendance-backend/internal/store"
)

// Year is an academic year (1st, 2nd, ...).
type Year struct {
	ID       int    `json:"id"`
	YearName string `json:"year_name"`
}

// Branch is a department (CSE, ECE, ...).
type Branch struct {
	ID         int    `json:"id"`
	BranchName string `json:"branch_name"`
}

// Section is a class group within a year and branch.
type Section struct {
	ID          int    `json:"id"`
	SectionName string `json:"section_name"`
	YearID      int    `json:"year_id"`
	BranchID    int    `json:"branch_id"`
}

// Course is a degree program.
type Course struct {
	ID         int    `json:"id"`
	CourseName string `json:"course_name"`
}

// Repository reads the reference tables. They are read-mostly lookups with
// no write path here.
type Repository struct {
	db store.DBTX
}

// NewRepository creates a repo.
func NewRepository(db store.DBTX) *Repository {
	return &Repository{db: db}
}

// Years lists academic years ordered by id.
func (r *Repository) Years(ctx context.Context) ([]Year, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, year_name FROM years ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Year
	for rows.Next() {
		var y Year
		if err := rows.Scan(&y.ID, &y.YearName); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

// Branches lists branches ordered by name.
func (r *Repository) Branches(ctx context.Context) ([]Branch, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, branch_name FROM branches ORDER BY branch_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.BranchName); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Sections lists sections, optionally filtered by year and branch.
func (r *Repository) Sections(ctx context.Context, yearID, branchID int) ([]Section, error) {
	query := `SELECT id, section_name, year_id, branch_id FROM sections WHERE 1=1`
	args := []any{}
	if yearID > 0 {
		args = append(args, yearID)
		query += fmt.Sprintf(" AND year_id = $%d", len(args))
	}
	if branchID > 0 {
		args = append(args, branchID)
		query += fmt.Sprintf(" AND branch_id = $%d", len(args))
	}
	query += " ORDER BY section_name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.SectionName, &s.YearID, &s.BranchID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Courses lists courses ordered by name.
func (r *Repository) Courses(ctx context.Context) ([]Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, course_name FROM courses ORDER BY course_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.CourseName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

package student

import (
	"context"
	"strings"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/attendance"
)

// Detail is a student plus their attendance stats.
type Detail struct {
	Student
	AttendanceStats attendance.Stats `json:"attendance_stats"`
}

// Service validates student operations and joins in attendance stats.
type Service struct {
	repo  *Repository
	stats *attendance.Service
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository, stats *attendance.Service) *Service {
	return &Service{repo: repo, stats: stats}
}

// Add registers a new student. All reference keys are required.
func (s *Service) Add(ctx context.Context, in Student) (Student, error) {
	in.RollNumber = strings.TrimSpace(in.RollNumber)
	in.FullName = strings.TrimSpace(in.FullName)
	in.ParentPhone = strings.TrimSpace(in.ParentPhone)
	if in.RollNumber == "" || in.FullName == "" || in.ParentPhone == "" ||
		in.CourseID <= 0 || in.YearID <= 0 || in.BranchID <= 0 || in.SectionID <= 0 {
		return Student{}, apperr.Validation("roll_number, full_name, parent_phone, course_id, year_id, branch_id and section_id are required")
	}
	out, err := s.repo.Create(ctx, in)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeDuplicate) {
			return Student{}, err
		}
		return Student{}, apperr.Storage(err)
	}
	return out, nil
}

// List returns students matching the filters.
func (s *Service) List(ctx context.Context, f Filter) ([]ListRow, error) {
	rows, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if rows == nil {
		rows = []ListRow{}
	}
	return rows, nil
}

// Get returns one student with their attendance percentage. The percentage
// comes from the same computation the section summary uses.
func (s *Service) Get(ctx context.Context, id int) (Detail, error) {
	stu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, apperr.Storage(err)
	}
	if stu == nil {
		return Detail{}, apperr.NotFound("student not found")
	}
	stats, err := s.stats.StudentStats(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Student: *stu, AttendanceStats: stats}, nil
}

// Remove soft-deletes a student.
func (s *Service) Remove(ctx context.Context, id int) error {
	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if !ok {
		return apperr.NotFound("student not found")
	}
	return nil
}

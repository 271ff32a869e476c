package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/store"
)

// DateLayout is the wire format for attendance dates.
const DateLayout = "2006-01-02"

// Entry is one (student, status) pair within a submitted batch.
type Entry struct {
	StudentID int    `json:"student_id"`
	Status    Status `json:"status"`
}

// BatchResult reports a committed batch: how many rows were written and
// which students were absent, in submission order.
type BatchResult struct {
	Inserted    int
	AbsenteeIDs []int
}

// Stats summarises one student's attendance.
type Stats struct {
	TotalSessions   int    `json:"total_sessions"`
	PresentSessions int    `json:"present_sessions"`
	Percentage      string `json:"percentage"`
}

// Service coordinates attendance marking and reporting.
type Service struct {
	db        *sql.DB
	repo      *Repository
	threshold float64
}

// NewService creates a service backed by the given database handle.
func NewService(db *sql.DB, threshold float64) *Service {
	if threshold <= 0 {
		threshold = 75
	}
	return &Service{db: db, repo: NewRepository(db), threshold: threshold}
}

// MarkBatch commits a batch of attendance entries for one date/session in a
// single transaction. If any entry already has a stored record the whole
// batch is aborted and a DuplicateEntry error names the offending student.
func (s *Service) MarkBatch(ctx context.Context, markedBy int, date, session string, entries []Entry) (BatchResult, error) {
	if err := validateBatch(date, session, entries); err != nil {
		batchesRejected.Inc()
		return BatchResult{}, err
	}

	var result BatchResult
	err := store.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx store.DBTX) error {
		repo := NewRepository(tx)
		for _, entry := range entries {
			// The pre-check yields a clearer message; the UNIQUE
			// constraint remains the final arbiter under races.
			exists, err := repo.Exists(ctx, entry.StudentID, date, session)
			if err != nil {
				return apperr.Storage(err)
			}
			if exists {
				return apperr.Duplicate("attendance already submitted for student %d for this session, updates are not allowed", entry.StudentID)
			}
			if _, err := repo.Insert(ctx, Record{
				StudentID: entry.StudentID,
				Date:      date,
				Session:   session,
				Status:    entry.Status,
				MarkedBy:  markedBy,
			}); err != nil {
				var appErr *apperr.Error
				if errors.As(err, &appErr) {
					return err
				}
				return apperr.Storage(err)
			}
			result.Inserted++
			if entry.Status == StatusAbsent {
				result.AbsenteeIDs = append(result.AbsenteeIDs, entry.StudentID)
			}
		}
		return nil
	})
	if err != nil {
		batchesRejected.Inc()
		return BatchResult{}, err
	}
	recordsInserted.Add(float64(result.Inserted))
	return result, nil
}

// Report returns the flat rows for a date, session and section.
func (s *Service) Report(ctx context.Context, date, session string, sectionID int) ([]ReportRow, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}
	if session == "" {
		return nil, apperr.Validation("session is required")
	}
	if sectionID <= 0 {
		return nil, apperr.Validation("section_id is required")
	}
	rows, err := s.repo.Report(ctx, date, session, sectionID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}

// SectionSummary returns per-student totals and percentages for a section,
// ordered by roll number. A section with no students yields an empty slice.
func (s *Service) SectionSummary(ctx context.Context, sectionID int) ([]SummaryRow, error) {
	if sectionID <= 0 {
		return nil, apperr.Validation("section_id is required")
	}
	rows, err := s.repo.SectionCounts(ctx, sectionID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	for i := range rows {
		rows[i].Percentage = Percentage(rows[i].PresentCount, rows[i].TotalSessions)
		rows[i].BelowThreshold = BelowThreshold(rows[i].PresentCount, rows[i].TotalSessions, s.threshold)
	}
	if rows == nil {
		rows = []SummaryRow{}
	}
	return rows, nil
}

// StudentStats computes the same percentage as SectionSummary, scoped to one
// student.
func (s *Service) StudentStats(ctx context.Context, studentID int) (Stats, error) {
	present, total, err := s.repo.StudentCounts(ctx, studentID)
	if err != nil {
		return Stats{}, apperr.Storage(err)
	}
	return Stats{
		TotalSessions:   total,
		PresentSessions: present,
		Percentage:      Percentage(present, total),
	}, nil
}

func validateBatch(date, session string, entries []Entry) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return apperr.Validation("date must be YYYY-MM-DD")
	}
	if session == "" {
		return apperr.Validation("session is required")
	}
	if len(entries) == 0 {
		return apperr.Validation("attendance_data must be a non-empty array")
	}
	for _, entry := range entries {
		if entry.StudentID <= 0 {
			return apperr.Validation("student_id is required on every entry")
		}
		if !entry.Status.Valid() {
			return apperr.Validation("status must be 'present' or 'absent', got %q", entry.Status)
		}
	}
	return nil
}

package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
)

func newMock(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(db, 75), mock
}

func expectNoExisting(mock sqlmock.Sqlmock, studentID int) {
	mock.ExpectQuery("SELECT 1 FROM attendance").
		WithArgs(studentID, "2024-03-01", "morning").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
}

func expectInsert(mock sqlmock.Sqlmock, studentID, newID int) {
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(studentID, "2024-03-01", "morning", sqlmock.AnyArg(), 7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(newID, time.Now()))
}

func TestMarkBatchCommitsAllAndReportsAbsentees(t *testing.T) {
	svc, mock := newMock(t)

	entries := []Entry{
		{StudentID: 1, Status: StatusPresent},
		{StudentID: 2, Status: StatusAbsent},
		{StudentID: 3, Status: StatusPresent},
		{StudentID: 4, Status: StatusAbsent},
	}

	mock.ExpectBegin()
	for i, e := range entries {
		expectNoExisting(mock, e.StudentID)
		expectInsert(mock, e.StudentID, 100+i)
	}
	mock.ExpectCommit()

	result, err := svc.MarkBatch(context.Background(), 7, "2024-03-01", "morning", entries)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Inserted)
	assert.Equal(t, []int{2, 4}, result.AbsenteeIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBatchAbortsWholeBatchOnDuplicate(t *testing.T) {
	svc, mock := newMock(t)

	entries := []Entry{
		{StudentID: 1, Status: StatusPresent},
		{StudentID: 2, Status: StatusAbsent},
	}

	mock.ExpectBegin()
	expectNoExisting(mock, 1)
	expectInsert(mock, 1, 100)
	// second entry already has a record
	mock.ExpectQuery("SELECT 1 FROM attendance").
		WithArgs(2, "2024-03-01", "morning").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.MarkBatch(context.Background(), 7, "2024-03-01", "morning", entries)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeDuplicate))
	assert.Contains(t, err.Error(), "student 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBatchMapsUniqueViolationToDuplicate(t *testing.T) {
	svc, mock := newMock(t)

	// pre-check passes but the constraint fires on insert (concurrent submit)
	mock.ExpectBegin()
	expectNoExisting(mock, 5)
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(5, "2024-03-01", "morning", sqlmock.AnyArg(), 7).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := svc.MarkBatch(context.Background(), 7, "2024-03-01", "morning", []Entry{{StudentID: 5, Status: StatusAbsent}})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBatchValidation(t *testing.T) {
	svc, _ := newMock(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		date    string
		session string
		entries []Entry
	}{
		{name: "bad date", date: "01-03-2024", session: "morning", entries: []Entry{{StudentID: 1, Status: StatusPresent}}},
		{name: "empty session", date: "2024-03-01", session: "", entries: []Entry{{StudentID: 1, Status: StatusPresent}}},
		{name: "empty batch", date: "2024-03-01", session: "morning", entries: nil},
		{name: "bad status", date: "2024-03-01", session: "morning", entries: []Entry{{StudentID: 1, Status: "late"}}},
		{name: "missing student", date: "2024-03-01", session: "morning", entries: []Entry{{Status: StatusPresent}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MarkBatch(ctx, 7, tt.date, tt.session, tt.entries)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation), "got %v", err)
		})
	}
}

func TestSectionSummaryFormatsPercentages(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery("FROM students s").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "roll_number", "full_name", "total_sessions", "present_count"}).
			AddRow(1, "21A01", "Anu", 4, 3).
			AddRow(2, "21A02", "Bala", 3, 1).
			AddRow(3, "21A03", "Chitra", 0, 0))

	rows, err := svc.SectionSummary(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "75.00", rows[0].Percentage)
	assert.False(t, rows[0].BelowThreshold)
	assert.Equal(t, "33.33", rows[1].Percentage)
	assert.True(t, rows[1].BelowThreshold)
	assert.Equal(t, "0.00", rows[2].Percentage)
	assert.True(t, rows[2].BelowThreshold)
}

func TestSectionSummaryEmptySection(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery("FROM students s").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "roll_number", "full_name", "total_sessions", "present_count"}))

	rows, err := svc.SectionSummary(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestStudentStatsMatchesSummaryPercentage(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery("FROM attendance").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"present", "total"}).AddRow(3, 4))
	stats, err := svc.StudentStats(context.Background(), 1)
	require.NoError(t, err)

	mock.ExpectQuery("FROM students s").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "roll_number", "full_name", "total_sessions", "present_count"}).
			AddRow(1, "21A01", "Anu", 4, 3))
	rows, err := svc.SectionSummary(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, rows[0].Percentage, stats.Percentage)
	assert.Equal(t, "75.00", stats.Percentage)
}

func TestReportValidation(t *testing.T) {
	svc, _ := newMock(t)
	ctx := context.Background()

	_, err := svc.Report(ctx, "not-a-date", "morning", 1)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = svc.Report(ctx, "2024-03-01", "", 1)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = svc.Report(ctx, "2024-03-01", "morning", 0)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestReportRows(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery("JOIN students s").
		WithArgs("2024-03-01", "morning", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "roll_number", "full_name", "status", "attendance_date", "session", "marked_by_name"}).
			AddRow(10, "21A01", "Anu", "present", "2024-03-01", "morning", "Prof. Rao").
			AddRow(11, "21A02", "Bala", "absent", "2024-03-01", "morning", "Prof. Rao"))

	rows, err := svc.Report(context.Background(), "2024-03-01", "morning", 3)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, StatusAbsent, rows[1].Status)
	assert.Equal(t, "Prof. Rao", rows[0].MarkedByName)
}

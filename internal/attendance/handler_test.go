package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sivaji4829/attendance-backend/internal/auth"
	"github.com/Sivaji4829/attendance-backend/internal/queue"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *queue.InMemory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	q := queue.NewInMemory(16)
	h := NewHandler(NewService(db, 75), q)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("claims", auth.Claims{UserID: 7, Role: auth.RoleFaculty})
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/attendance"))
	return r, mock, q
}

func TestMarkEndpointCreatesRecordsAndEnqueuesAbsentees(t *testing.T) {
	r, mock, q := newTestRouter(t)

	mock.ExpectBegin()
	expectNoExisting(mock, 1)
	expectInsert(mock, 1, 100)
	expectNoExisting(mock, 2)
	expectInsert(mock, 2, 101)
	mock.ExpectCommit()

	body := `{"date":"2024-03-01","session":"morning","attendance_data":[{"student_id":1,"status":"present"},{"student_id":2,"status":"absent"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		RecordsCount   int   `json:"records_count"`
		AbsenteesCount int   `json:"absentees_count"`
		AbsenteeIDs    []int `json:"absentee_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.RecordsCount)
	assert.Equal(t, 1, resp.AbsenteesCount)
	assert.Equal(t, []int{2}, resp.AbsenteeIDs)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msgs, err := q.Consume(ctx)
	require.NoError(t, err)
	select {
	case msg := <-msgs:
		job, err := queue.DecodeAbsence(msg)
		require.NoError(t, err)
		assert.Equal(t, queue.AbsenceJob{StudentID: 2, Date: "2024-03-01", Session: "morning"}, job)
	case <-ctx.Done():
		t.Fatal("expected an absence job on the queue")
	}
}

func TestMarkEndpointDuplicateReturns400(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM attendance").
		WithArgs(1, "2024-03-01", "morning").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	body := `{"date":"2024-03-01","session":"morning","attendance_data":[{"student_id":1,"status":"present"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "student 1")
}

func TestMarkEndpointRejectsMalformedBody(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(`{"date":"2024-03-01"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	mock.ExpectQuery("FROM students s").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "roll_number", "full_name", "total_sessions", "present_count"}).
			AddRow(1, "21A01", "Anu", 4, 3))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/summary?section_id=3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"percentage":"75.00"`)
}

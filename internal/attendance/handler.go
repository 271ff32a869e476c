package attendance

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/auth"
	"github.com/Sivaji4829/attendance-backend/internal/queue"
)

// Handler exposes the attendance endpoints.
type Handler struct {
	svc *Service
	q   queue.Queue
}

// NewHandler creates a handler. q receives one absence job per absentee of a
// committed batch.
func NewHandler(svc *Service, q queue.Queue) *Handler {
	return &Handler{svc: svc, q: q}
}

// RegisterRoutes mounts attendance endpoints for admin/faculty callers.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staff := auth.RequireRoles(auth.RoleAdmin, auth.RoleFaculty)
	r.POST("", staff, h.mark)
	r.GET("/report", staff, h.report)
	r.GET("/summary", staff, h.summary)
}

func (h *Handler) mark(c *gin.Context) {
	var req struct {
		Date           string  `json:"date" binding:"required"`
		Session        string  `json:"session" binding:"required"`
		AttendanceData []Entry `json:"attendance_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendance data provided"})
		return
	}
	claims, _ := auth.ClaimsFrom(c)

	result, err := h.svc.MarkBatch(c.Request.Context(), claims.UserID, req.Date, req.Session, req.AttendanceData)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	for _, id := range result.AbsenteeIDs {
		msg, err := queue.NewAbsenceMessage(queue.AbsenceJob{StudentID: id, Date: req.Date, Session: req.Session})
		if err != nil {
			continue
		}
		if err := h.q.Publish(c.Request.Context(), msg); err != nil {
			log.Printf("absence enqueue failed for student %d: %v", id, err)
		}
	}

	absenteeIDs := result.AbsenteeIDs
	if absenteeIDs == nil {
		absenteeIDs = []int{}
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":         "attendance marked successfully",
		"records_count":   result.Inserted,
		"absentees_count": len(absenteeIDs),
		"absentee_ids":    absenteeIDs,
	})
}

func (h *Handler) report(c *gin.Context) {
	sectionID, _ := strconv.Atoi(c.Query("section_id"))
	rows, err := h.svc.Report(c.Request.Context(), c.Query("date"), c.Query("session"), sectionID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = []ReportRow{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) summary(c *gin.Context) {
	sectionID, _ := strconv.Atoi(c.Query("section_id"))
	rows, err := h.svc.SectionSummary(c.Request.Context(), sectionID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/auth"
)

// Handler exposes the SMS endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts SMS endpoints; log history is admin only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/send", h.send)
	r.GET("/logs", auth.RequireRoles(auth.RoleAdmin), h.logs)
}

func (h *Handler) send(c *gin.Context) {
	var req struct {
		StudentID int    `json:"student_id" binding:"required"`
		Date      string `json:"date" binding:"required"`
		Session   string `json:"session" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.Trigger(c.Request.Context(), req.StudentID, req.Date, req.Session)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sms delivery failed", "detail": result.Detail})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sms sent successfully", "request_id": result.RequestID})
}

func (h *Handler) logs(c *gin.Context) {
	rows, err := h.svc.Logs(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

package student

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
	"github.com/Sivaji4829/attendance-backend/internal/auth"
)

// Handler exposes the student endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts student endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staff := auth.RequireRoles(auth.RoleAdmin, auth.RoleFaculty)
	admin := auth.RequireRoles(auth.RoleAdmin)
	r.POST("", admin, h.add)
	r.GET("", staff, h.list)
	r.GET("/:id", staff, h.get)
	r.DELETE("/:id", admin, h.remove)
}

func (h *Handler) add(c *gin.Context) {
	var req struct {
		RollNumber  string `json:"roll_number"`
		FullName    string `json:"full_name"`
		ParentPhone string `json:"parent_phone"`
		CourseID    int    `json:"course_id"`
		YearID      int    `json:"year_id"`
		BranchID    int    `json:"branch_id"`
		SectionID   int    `json:"section_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Add(c.Request.Context(), Student{
		RollNumber:  req.RollNumber,
		FullName:    req.FullName,
		ParentPhone: req.ParentPhone,
		CourseID:    req.CourseID,
		YearID:      req.YearID,
		BranchID:    req.BranchID,
		SectionID:   req.SectionID,
	})
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) list(c *gin.Context) {
	yearID, _ := strconv.Atoi(c.Query("year_id"))
	branchID, _ := strconv.Atoi(c.Query("branch_id"))
	sectionID, _ := strconv.Atoi(c.Query("section_id"))
	rows, err := h.svc.List(c.Request.Context(), Filter{YearID: yearID, BranchID: branchID, SectionID: sectionID})
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) remove(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "student deleted successfully", "id": id})
}

package academic

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler exposes the reference-data endpoints used by frontend dropdowns.
type Handler struct {
	repo *Repository
}

// NewHandler creates a handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts lookup endpoints; any authenticated caller may read
// them.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/years", h.years)
	r.GET("/branches", h.branches)
	r.GET("/sections", h.sections)
	r.GET("/courses", h.courses)
}

func (h *Handler) years(c *gin.Context) {
	out, err := h.repo.Years(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching years"})
		return
	}
	if out == nil {
		out = []Year{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) branches(c *gin.Context) {
	out, err := h.repo.Branches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching branches"})
		return
	}
	if out == nil {
		out = []Branch{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) sections(c *gin.Context) {
	yearID, _ := strconv.Atoi(c.Query("year_id"))
	branchID, _ := strconv.Atoi(c.Query("branch_id"))
	out, err := h.repo.Sections(c.Request.Context(), yearID, branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching sections"})
		return
	}
	if out == nil {
		out = []Section{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) courses(c *gin.Context) {
	out, err := h.repo.Courses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching courses"})
		return
	}
	if out == nil {
		out = []Course{}
	}
	c.JSON(http.StatusOK, out)
}

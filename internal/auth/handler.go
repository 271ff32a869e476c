package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sivaji4829/attendance-backend/internal/apperr"
)

// Handler exposes the auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts auth endpoints. authn is the token middleware shared
// by the rest of the API.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authn gin.HandlerFunc) {
	r.POST("/login", h.login)
	r.POST("/register", authn, RequireRoles(RoleAdmin), h.register)
	r.GET("/me", authn, h.me)
}

func (h *Handler) register(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.FullName, req.Email, req.Password, req.Role)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// bad credentials surface as 401
		status := apperr.HTTPStatus(err)
		if apperr.IsCode(err, apperr.CodeValidation) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         res.User.ID,
		"full_name":  res.User.FullName,
		"email":      res.User.Email,
		"role":       res.User.Role,
		"token":      res.Token,
		"expires_at": res.ExpiresAt.Unix(),
	})
}

func (h *Handler) me(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	u, err := h.svc.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/user"
)

// UserHandler serves account registration, lookup and listing.
type UserHandler struct {
	svc UserService
}

// NewUserHandler creates a handler.
func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.Create(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, user.ErrNameRequired):
			fail(c, http.StatusBadRequest, "Name is required")
		case errors.Is(err, user.ErrInvalidEmail):
			fail(c, http.StatusBadRequest, "A valid email is required")
		case errors.Is(err, user.ErrPasswordTooShort):
			fail(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		case errors.Is(err, user.ErrEmailTaken):
			fail(c, http.StatusConflict, "User already registered")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User created successfully"})
}

// GetByID handles GET /user/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidID):
			fail(c, http.StatusBadRequest, "Invalid id")
		case errors.Is(err, user.ErrNotFound):
			fail(c, http.StatusNotFound, "User not found")
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 5)

	res, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		if errors.Is(err, user.ErrInvalidPagination) {
			fail(c, http.StatusBadRequest, "Invalid pagination")
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":     res.Users,
		"totalUser": res.Total,
		"page":      res.Page,
		"limit":     res.Limit,
	})
}

// Search handles GET /filter-users.
func (h *UserHandler) Search(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 5)

	res, err := h.svc.Search(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		if errors.Is(err, user.ErrInvalidPagination) {
			fail(c, http.StatusBadRequest, "Invalid pagination")
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":     res.Users,
		"page":      res.Page,
		"limit":     res.Limit,
		"totalUser": res.Total,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"haven/models"
	userService "haven/services/user"
	"haven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the administrative account operations. Every route
// behind it requires the admin role.
type AdminHandler struct {
	Svc userService.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc userService.UserService) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateStaff handles POST /api/admin/users, provisioning owner and admin
// accounts.
func (h *AdminHandler) CreateStaff(c *gin.Context) {
	var input struct {
		Email    string      `json:"email" binding:"required,email"`
		FullName string      `json:"fullName" binding:"required"`
		Password string      `json:"password" binding:"required,min=8"`
		Role     models.Role `json:"role" binding:"required"`
		VenueID  string      `json:"venueId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	user, err := h.Svc.CreateStaff(c.Request.Context(), input.Email, input.FullName, input.Password, input.Role, input.VenueID)
	if errors.Is(err, userService.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// AssignVenue handles PUT /api/admin/users/:id/venue.
func (h *AdminHandler) AssignVenue(c *gin.Context) {
	var input struct {
		VenueID string `json:"venueId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Svc.AssignVenue(c.Request.Context(), c.Param("id"), input.VenueID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venue assigned"})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

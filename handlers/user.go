package handlers

import (
	"errors"
	"net/http"

	"haven/middleware"
	userService "haven/services/user"
	"haven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes registration, authentication and profile endpoints.
type UserHandler struct {
	Svc userService.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc userService.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req userService.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result, err := h.Svc.Register(c.Request.Context(), req)
	if errors.Is(err, userService.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if err != nil {
		utils.GetLogger().Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result, err := h.Svc.Login(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, userService.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		utils.GetLogger().Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout handles POST /api/users/logout.
func (h *UserHandler) Logout(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), actor.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateFCMToken handles PUT /api/users/fcm-token, registering the device
// token used for push notifications.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Svc.UpdateFCMToken(c.Request.Context(), actor.ID, input.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}

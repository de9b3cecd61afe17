package handlers

import (
	"errors"
	"net/http"

	menuRepo "haven/database/repository/menu"
	"haven/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MenuHandler exposes the catering catalog. Reads are public; mutations are
// admin only.
type MenuHandler struct {
	Repo menuRepo.MenuRepository
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(repo menuRepo.MenuRepository) *MenuHandler {
	return &MenuHandler{Repo: repo}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list menu items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if item.Name == "" || item.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a non-negative price are required"})
		return
	}
	item.ID = uuid.New().String()
	if err := h.Repo.Create(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/menu/:id.
func (h *MenuHandler) Update(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	item.ID = c.Param("id")
	err := h.Repo.Update(c.Request.Context(), &item)
	if errors.Is(err, menuRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/menu/:id.
func (h *MenuHandler) Delete(c *gin.Context) {
	err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, menuRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

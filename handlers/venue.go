package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	venueRepo "haven/database/repository/venue"
	"haven/models"
	"haven/services/storage"
	"haven/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VenueHandler exposes the venue catalog. Reads are public; mutations are
// admin only.
type VenueHandler struct {
	Repo    venueRepo.VenueRepository
	Storage storage.StorageService
}

// NewVenueHandler creates a new VenueHandler. Storage may be nil when image
// uploads are not configured.
func NewVenueHandler(repo venueRepo.VenueRepository, store storage.StorageService) *VenueHandler {
	return &VenueHandler{Repo: repo, Storage: store}
}

// List handles GET /api/venues.
func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list venues", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list venues"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

// Get handles GET /api/venues/:id.
func (h *VenueHandler) Get(c *gin.Context) {
	venue, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, venueRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch venue"})
		return
	}
	c.JSON(http.StatusOK, venue)
}

// Create handles POST /api/venues.
func (h *VenueHandler) Create(c *gin.Context) {
	var venue models.Venue
	if err := c.ShouldBindJSON(&venue); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if venue.Name == "" || venue.PricePerDay <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a positive pricePerDay are required"})
		return
	}
	venue.ID = uuid.New().String()
	if err := h.Repo.Create(c.Request.Context(), &venue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venue"})
		return
	}
	c.JSON(http.StatusCreated, venue)
}

// Update handles PUT /api/venues/:id.
func (h *VenueHandler) Update(c *gin.Context) {
	var venue models.Venue
	if err := c.ShouldBindJSON(&venue); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	venue.ID = c.Param("id")
	err := h.Repo.Update(c.Request.Context(), &venue)
	if errors.Is(err, venueRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update venue"})
		return
	}
	c.JSON(http.StatusOK, venue)
}

// Delete handles DELETE /api/venues/:id.
func (h *VenueHandler) Delete(c *gin.Context) {
	err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, venueRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete venue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venue deleted"})
}

// UploadImage handles POST /api/venues/:id/images.
func (h *VenueHandler) UploadImage(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage not configured"})
		return
	}
	venueID := c.Param("id")
	if _, err := h.Repo.GetByID(c.Request.Context(), venueID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}
	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	url, err := h.Storage.UploadVenueImage(c.Request.Context(), tempFilePath, venueID)
	if err != nil {
		utils.GetLogger().Error("Venue image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}
	if err := h.Repo.AddImage(c.Request.Context(), venueID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

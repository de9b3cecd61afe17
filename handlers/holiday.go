package handlers

import (
	"net/http"
	"strconv"
	"time"

	"haven/services/holiday"
	"haven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HolidayHandler exposes the blackout calendar consulted by the booking form.
type HolidayHandler struct {
	Svc *holiday.Service
}

// NewHolidayHandler creates a new HolidayHandler.
func NewHolidayHandler(svc *holiday.Service) *HolidayHandler {
	return &HolidayHandler{Svc: svc}
}

// List handles GET /api/holidays?year=YYYY.
func (h *HolidayHandler) List(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := h.Svc.HolidaysInRange(c.Request.Context(), start, end)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch holidays", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Holiday calendar unavailable. Try again later."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "holidays": holidays})
}

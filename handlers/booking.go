package handlers

import (
	"net/http"
	"strconv"
	"time"

	"haven/middleware"
	"haven/models"
	"haven/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.CreateBooking(c.Request.Context(), actor, &req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Quote handles POST /api/bookings/quote.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	q, err := h.Svc.QuoteBooking(c.Request.Context(), &req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	b, err := h.Svc.GetBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMine handles GET /api/bookings.
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	bookings, err := h.Svc.ListMyBookings(c.Request.Context(), actor)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListByVenue handles GET /api/venues/:id/bookings.
func (h *BookingHandler) ListByVenue(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	bookings, err := h.Svc.ListVenueBookings(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// BookedRanges handles GET /api/venues/:id/booked-dates. Public: customers
// need the blocked calendar before signing in.
func (h *BookingHandler) BookedRanges(c *gin.Context) {
	ranges, err := h.Svc.BookedRanges(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranges": ranges})
}

func (h *BookingHandler) transitionHandler(op func(c *gin.Context, actor models.Actor, id string) (*models.Booking, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		b, err := op(c, actor, c.Param("id"))
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// Approve handles PUT /api/bookings/:id/approve.
func (h *BookingHandler) Approve() gin.HandlerFunc {
	return h.transitionHandler(func(c *gin.Context, actor models.Actor, id string) (*models.Booking, error) {
		return h.Svc.Approve(c.Request.Context(), actor, id)
	})
}

// Start handles PUT /api/bookings/:id/start.
func (h *BookingHandler) Start() gin.HandlerFunc {
	return h.transitionHandler(func(c *gin.Context, actor models.Actor, id string) (*models.Booking, error) {
		return h.Svc.Start(c.Request.Context(), actor, id)
	})
}

// MarkReady handles PUT /api/bookings/:id/ready.
func (h *BookingHandler) MarkReady() gin.HandlerFunc {
	return h.transitionHandler(func(c *gin.Context, actor models.Actor, id string) (*models.Booking, error) {
		return h.Svc.MarkReady(c.Request.Context(), actor, id)
	})
}

// Finish handles PUT /api/bookings/:id/finish.
func (h *BookingHandler) Finish() gin.HandlerFunc {
	return h.transitionHandler(func(c *gin.Context, actor models.Actor, id string) (*models.Booking, error) {
		return h.Svc.Finish(c.Request.Context(), actor, id)
	})
}

// Rate handles POST /api/bookings/:id/rating.
func (h *BookingHandler) Rate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.Rate(c.Request.Context(), actor, c.Param("id"), input.Rating, input.Comment)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Stats handles GET /api/venues/:id/stats.
func (h *BookingHandler) Stats(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}
	stats, err := h.Svc.VenueStats(c.Request.Context(), actor, c.Param("id"), year)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

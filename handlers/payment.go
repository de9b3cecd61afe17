package handlers

import (
	"errors"
	"net/http"

	"haven/middleware"
	"haven/services/booking"
	"haven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes checkout initiation and payment confirmation.
type PaymentHandler struct {
	Svc booking.BookingService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc booking.BookingService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// CheckoutItems handles POST /api/payments/checkout. The endpoint accepts a
// list of booking line items and responds with the hosted checkout URL:
// 200 on success, 400 for malformed input, 500 for provider failure.
func (h *PaymentHandler) CheckoutItems(c *gin.Context) {
	var req booking.ItemsCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.CreateItemsCheckout(c.Request.Context(), req)
	if err != nil {
		var vErr *booking.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "error": vErr.Error()})
			return
		}
		utils.GetLogger().Error("Checkout initiation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"isSuccess": false, "error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isSuccess":    true,
		"checkout_url": result.CheckoutURL,
		"total_amount": result.TotalAmount,
		"full_name":    result.FullName,
	})
}

// CreateCheckout handles POST /api/bookings/:id/checkout for an ongoing
// booking's own payment flow.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	session, err := h.Svc.CreateCheckout(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"checkoutSessionId": session.ID,
		"checkoutUrl":       session.URL,
	})
}

// Confirm handles POST /api/bookings/:id/confirm-payment, invoked once the
// external checkout completes. Confirming an already paid booking is a no-op.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		SessionID string `json:"sessionId"`
	}
	// The session id may also arrive as a query parameter on the success
	// redirect.
	_ = c.ShouldBindJSON(&input)
	if input.SessionID == "" {
		input.SessionID = c.Query("session_id")
	}

	b, err := h.Svc.ConfirmPayment(c.Request.Context(), actor, c.Param("id"), input.SessionID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PayInApp handles POST /api/bookings/:id/pay for the simplified in-app card
// flow.
func (h *PaymentHandler) PayInApp(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	b, err := h.Svc.PayInApp(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

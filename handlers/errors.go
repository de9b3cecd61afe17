package handlers

import (
	"errors"
	"net/http"

	"haven/services/booking"
	"haven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondBookingError maps the service error taxonomy onto HTTP statuses.
// Validation and authorization failures carry their specific message;
// provider and persistence failures return a generic retry message and are
// logged in detail server side.
func respondBookingError(c *gin.Context, err error) {
	var (
		vErr  *booking.ValidationError
		aErr  *booking.AuthorizationError
		cErr  *booking.ConflictError
		nfErr *booking.NotFoundError
		pErr  *booking.ProviderError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.As(err, &aErr):
		c.JSON(http.StatusForbidden, gin.H{"error": aErr.Error()})
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, gin.H{"error": cErr.Error()})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	case errors.As(err, &pErr):
		utils.GetLogger().Error("Provider failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment or calendar provider unavailable. Try again later."})
	default:
		utils.GetLogger().Error("Internal failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Try again later."})
	}
}

package routes

import (
	"net/http"
	"time"

	"haven/handlers"
	"haven/middleware"
	"haven/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.Login)

		// Protected routes (require authentication)
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.User.Logout)
		api.GET("/me", hb.User.Me)
		api.PUT("/fcm-token", hb.User.UpdateFCMToken)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/quote", hb.Booking.Quote)

		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", hb.Booking.Create)
		api.GET("", hb.Booking.ListMine)
		api.GET("/:id", hb.Booking.Get)
		api.POST("/:id/rating", hb.Booking.Rate)

		api.POST("/:id/checkout", hb.Payment.CreateCheckout)
		api.POST("/:id/confirm-payment", hb.Payment.Confirm)
		api.POST("/:id/pay", hb.Payment.PayInApp)

		staff := api.Group("")
		staff.Use(middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
		staff.PUT("/:id/approve", hb.Booking.Approve())
		staff.PUT("/:id/start", hb.Booking.Start())
		staff.PUT("/:id/ready", hb.Booking.MarkReady())
		staff.PUT("/:id/finish", hb.Booking.Finish())
	}
}

// RegisterVenueRoutes registers the venue catalog and per-venue views.
func RegisterVenueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/venues")
	{
		api.GET("", hb.Venue.List)
		api.GET("/:id", hb.Venue.Get)
		api.GET("/:id/booked-dates", hb.Booking.BookedRanges)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.GET("/:id/bookings", hb.Booking.ListByVenue)
		protected.GET("/:id/stats", hb.Booking.Stats)

		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		admin.POST("", hb.Venue.Create)
		admin.PUT("/:id", hb.Venue.Update)
		admin.DELETE("/:id", hb.Venue.Delete)
		admin.POST("/:id/images", hb.Venue.UploadImage)
	}
}

// RegisterMenuRoutes registers the catering catalog endpoints.
func RegisterMenuRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/menu")
	{
		api.GET("", hb.Menu.List)

		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		admin.POST("", hb.Menu.Create)
		admin.PUT("/:id", hb.Menu.Update)
		admin.DELETE("/:id", hb.Menu.Delete)
	}
}

// RegisterPaymentRoutes registers checkout initiation. The items endpoint is
// public and CORS-preflighted: it is called straight from the storefront.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/checkout", hb.Payment.CheckoutItems)
	}
}

// RegisterAdminRoutes sets up endpoints for account administration.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/users", hb.Admin.ListUsers)
		adminGroup.POST("/users", hb.Admin.CreateStaff)
		adminGroup.PUT("/users/:id/venue", hb.Admin.AssignVenue)
		adminGroup.DELETE("/users/:id", hb.Admin.DeleteUser)
	}
}

// RegisterHolidayRoutes registers the blackout calendar endpoint.
func RegisterHolidayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/holidays", hb.Holiday.List)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Haven"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterVenueRoutes(r, hb)
	RegisterMenuRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHolidayRoutes(r, hb)
}

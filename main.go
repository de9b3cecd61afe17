package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"haven/config"
	"haven/cron"
	"haven/database"
	bookingRepoPkg "haven/database/repository/booking"
	menuRepoPkg "haven/database/repository/menu"
	userRepoPkg "haven/database/repository/user"
	venueRepoPkg "haven/database/repository/venue"
	"haven/handlers"
	"haven/middleware"
	"haven/routes"
	"haven/services/booking"
	"haven/services/holiday"
	"haven/services/notification"
	"haven/services/payment"
	"haven/services/storage"
	"haven/services/tasks"
	"haven/services/user"
	"haven/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	if config.AppConfig.FirebaseCredentialsFile != "" {
		utils.FirebaseInit()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(database.MongoClient)
	venueRepo := venueRepoPkg.NewMongoVenueRepo(database.MongoClient)
	menuRepo := menuRepoPkg.NewMongoMenuRepo(database.MongoClient)
	userRepo := userRepoPkg.NewMongoUserRepo(database.MongoClient)

	// services.
	holidaySvc := holiday.NewService(utils.GetCacheClient())
	checkoutClient := payment.NewStripeCheckoutClient()
	notifier := tasks.NewEnqueuer()
	defer notifier.Close()

	bookingSvc := booking.NewBookingService(bookingRepo, venueRepo, menuRepo, holidaySvc, checkoutClient, notifier)
	userSvc := user.NewUserService(userRepo)

	var storageSvc storage.StorageService
	if config.AppConfig.CloudinaryURL != "" {
		svc, err := storage.NewCloudinaryStorage()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
		}
		storageSvc = svc
	}

	// Notification outbox worker.
	notificationSvc := notification.NewService(bookingRepo, userRepo, venueRepo)
	cron.InitNotifyWorker(notificationSvc)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Booking:  handlers.NewBookingHandler(bookingSvc),
		Payment:  handlers.NewPaymentHandler(bookingSvc),
		User:     handlers.NewUserHandler(userSvc),
		Admin:    handlers.NewAdminHandler(userSvc),
		Venue:    handlers.NewVenueHandler(venueRepo, storageSvc),
		Menu:     handlers.NewMenuHandler(menuRepo),
		Holiday:  handlers.NewHolidayHandler(holidaySvc),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	database.CloseDB(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}

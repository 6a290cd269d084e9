package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"resort-backend/config"
	"resort-backend/controllers"
	"resort-backend/routes"
	"resort-backend/services"
	"resort-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Required session secret (fatal if missing)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot sign session tokens.")
	}
	log.Println("✅ JWT_SECRET detected.")

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// External collaborators
	storageService := services.NewStorageService(
		utils.EnvOrDefault("STORAGE_ENDPOINT", ""),
		utils.EnvOrDefault("STORAGE_TOKEN", ""),
	)
	siteConfigService := services.NewSiteConfigService(
		utils.EnvOrDefault("CMS_ENDPOINT", ""),
		utils.EnvOrDefault("CMS_TOKEN", ""),
	)

	// Initialize services
	hub := services.NewHub()
	pushService := services.NewPushService()
	notificationService := services.NewNotificationService(db, hub)
	profileService := services.NewProfileService(db)
	bookingService := services.NewBookingService(db, notificationService, pushService, hub)
	offerService := services.NewOfferService(db)
	roomService := services.NewRoomService(db)
	helpdeskService := services.NewHelpdeskService(db, notificationService)

	// Initialize controllers
	ctrl := routes.Controllers{
		Auth:          controllers.NewAuthController(db, profileService, jwtSecret),
		Profiles:      controllers.NewProfileController(profileService),
		Bookings:      controllers.NewBookingController(bookingService),
		Offers:        controllers.NewOfferController(offerService),
		Rooms:         controllers.NewRoomController(roomService, offerService),
		Notifications: controllers.NewNotificationController(notificationService),
		Helpdesk:      controllers.NewHelpdeskController(helpdeskService),
		Uploads:       controllers.NewUploadController(storageService),
		SiteConfig:    controllers.NewSiteConfigController(siteConfigService),
		Streams:       controllers.NewStreamController(hub, bookingService, notificationService),
		Admins:        controllers.NewAdminController(db),
	}

	// Build router
	router := routes.SetupRouter(ctrl, jwtSecret)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts; streaming routes rely on WriteTimeout=0 semantics
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

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

	"regalia-backend/config"
	"regalia-backend/controllers"
	"regalia-backend/routes"
	"regalia-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set.")
	}
	if os.Getenv("BREVO_API_KEY") == "" {
		log.Println("⚠️  BREVO_API_KEY not set – confirmation emails will not be sent.")
	} else {
		log.Println("✅ Brevo loaded – confirmation emails enabled.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	notifier := services.NewNotifierFromEnv()
	bookingService := services.NewBookingService(db, notifier)
	towerService := services.NewTowerService(db)
	unitService := services.NewUnitService(db)
	employeeService := services.NewEmployeeService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(employeeService)
	bookingController := controllers.NewBookingController(bookingService)
	towerController := controllers.NewTowerController(towerService)
	unitController := controllers.NewUnitController(unitService)
	employeeController := controllers.NewEmployeeController(employeeService)

	router := routes.SetupRouter(
		authController,
		bookingController,
		towerController,
		unitController,
		employeeController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on interrupt
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

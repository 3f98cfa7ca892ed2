package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"magnumdrive/internal/api"
	"magnumdrive/internal/repository"
	"magnumdrive/internal/service"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	carRepo := repository.NewCarRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	settingsSvc := service.NewSettingsService(settingsRepo)
	notifySvc := service.NewNotifyService(os.Getenv("COMPANY_NAME"))
	bookingSvc := service.NewBookingService(bookingRepo, carRepo, settingsSvc, notifySvc)
	carSvc := service.NewCarService(carRepo, bookingRepo)
	revenueSvc := service.NewRevenueService(bookingRepo)
	invoiceSvc := service.NewInvoiceService(settingsSvc)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(jobRepo)

	publicHandler := api.NewPublicHandler(bookingSvc, carSvc, settingsSvc)
	adminHandler := api.NewAdminHandler(bookingSvc, carSvc, revenueSvc, settingsSvc)
	invoiceHandler := api.NewInvoiceHandler(bookingSvc, carSvc, invoiceSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	if email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"); email != "" && password != "" {
		if err := adminAuthSvc.CreateAdmin(email, password); err != nil {
			log.Printf("Could not seed admin account %s: %v", email, err)
		}
	}

	r := api.NewRouter(publicHandler, adminHandler, invoiceHandler, adminAuthHandler)

	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := jobSvc.CancelStalePendingBookings(48 * time.Hour); err != nil {
			log.Printf("Stale booking sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule stale booking sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

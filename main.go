package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lounge-floor/config"
	"github.com/yeremiapane/lounge-floor/database"
	"github.com/yeremiapane/lounge-floor/middlewares"
	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/router"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	// Initialize logger
	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database ke utils untuk digunakan di controller
	utils.InitDB(db)

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedTimeSlots(db)

	// Setup rate limiter (50 requests per second per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Reconciler: konsumen tunggal untuk dua stream perubahan
	reservationSvc := services.NewReservationService(db)
	reconciler := services.NewReconciler(db, reservationSvc)
	reconciler.Start()
	defer reconciler.Stop()

	// Change monitor memberi makan reconciler dari change-feed database
	monitor := services.NewChangeMonitor(db, reconciler)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	// Setup router
	r := router.SetupRouter(db, reconciler)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Table{},
		&models.TimeSlot{},
		&models.Menu{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Pasang trigger change-feed
	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
	}
}

// seedTimeSlots -> isi slot default sekali saja kalau tabel masih kosong
func seedTimeSlots(db *gorm.DB) {
	var count int64
	db.Model(&models.TimeSlot{}).Count(&count)
	if count > 0 {
		return
	}

	slots := []models.TimeSlot{
		{StartTime: "11:00", EndTime: "13:00", DurationMinutes: 120, IsActive: true},
		{StartTime: "13:00", EndTime: "15:00", DurationMinutes: 120, IsActive: true},
		{StartTime: "17:00", EndTime: "19:00", DurationMinutes: 120, IsActive: true},
		{StartTime: "19:00", EndTime: "21:00", DurationMinutes: 120, IsActive: true},
		{StartTime: "21:00", EndTime: "23:00", DurationMinutes: 120, IsActive: true},
		{StartTime: "23:00", EndTime: "01:00", DurationMinutes: 120, IsActive: true},
	}
	for i := range slots {
		if err := db.Create(&slots[i]).Error; err != nil {
			utils.ErrorLogger.Printf("Error seeding time slot %s: %v", slots[i].Slot(), err)
		}
	}
	utils.InfoLogger.Printf("Seeded %d default time slots", len(slots))
}

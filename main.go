package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/task-manager-app/config"
	"github.com/yeremiapane/task-manager-app/database"
	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/realtime"
	"github.com/yeremiapane/task-manager-app/router"
	"github.com/yeremiapane/task-manager-app/services"
	"github.com/yeremiapane/task-manager-app/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	hub := realtime.NewHub()

	// The scanner gets a mailer only when SMTP credentials are present;
	// without one it still records in-app notifications.
	var mailer services.Mailer
	if cfg.SMTP.Configured() {
		mailer = services.NewSMTPMailer(cfg.SMTP)
		utils.InfoLogger.Println("Email transport configured")
	} else {
		utils.InfoLogger.Println("Email transport not configured, alerts will be in-app only")
	}

	scanner := services.NewNotificationScanner(
		services.NewGormTaskRepository(db),
		services.NewGormNotificationLedger(db),
		mailer,
		hub,
		cfg.FrontendURL,
	)
	scheduler := services.NewScanScheduler(scanner)
	if err := scheduler.Start(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start notification scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := router.SetupRouter(db, hub)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Event{},
		&models.Note{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if err := database.EnsureIndexes(db); err != nil {
		utils.ErrorLogger.Printf("Error creating indexes: %v", err)
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
}

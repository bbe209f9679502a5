package main

import (
	"os"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/routes"
	"cobranzas-backend/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		config.Log.Info("No .env file found")
	}
	config.InitLogger()

	if err := config.ConnectDB(); err != nil {
		config.Log.Fatalf("Failed to connect database: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Client{},
		&models.Ticket{},
		&models.Reminder{},
		&models.Message{},
	); err != nil {
		config.Log.Fatalf("Failed to migrate schema: %v", err)
	}

	// Provider credentials are checked here, before anything is served: a
	// misconfigured channel must kill the process, not half-send reminders.
	generator, err := services.NewAIGenerator()
	if err != nil {
		config.Log.Fatalf("AI generator init failed: %v", err)
	}
	emailSender, err := services.NewSendGridSender()
	if err != nil {
		config.Log.Fatalf("Email sender init failed: %v", err)
	}
	whatsappSender, err := services.NewWabaSender()
	if err != nil {
		config.Log.Fatalf("WhatsApp sender init failed: %v", err)
	}

	reminderService := services.NewReminderService(config.DB, generator, emailSender, whatsappSender)
	scheduler := reminderService.StartScheduler()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(reminderService)
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatalf("Server stopped: %v", err)
	}
}

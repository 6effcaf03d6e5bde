package main

import (
	"fmt"
	"log"
	"os"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/routes"
	"billtrack-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Bill{},
		&models.Payment{},
		&models.ReminderLog{},
	)
}

func main() {
	notifier := services.NewNotifier(services.NotifierConfigFromEnv())
	reminders := services.NewReminderService(config.DB, notifier)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

package main

import (
	"fmt"
	"log"
	"os"

	"labtrack-backend/config"
	"labtrack-backend/controllers"
	"labtrack-backend/models"
	"labtrack-backend/routes"
	"labtrack-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()
	config.RegisterMetrics()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Contact{},
		&models.WorkOrder{},
		&models.Activity{},
		&models.Assignment{},
		&models.Factura{},
		&models.WorkOrderFactura{},
		&models.HistoryEntry{},
		&models.Notification{},
		&models.PointRule{},
	)

	seedPointRules()
}

// seedPointRules installs the default point table; existing rows win.
func seedPointRules() {
	defaults := []models.PointRule{
		{Activity: "Calibracion", Points: 1},
		{Activity: "Ensayo", Points: 2},
		{Activity: "Mantenimiento", Points: 1},
		{Activity: "Verificacion", Points: 1},
		{Activity: "Emision", Points: 0},
	}
	for _, rule := range defaults {
		config.DB.Where(models.PointRule{Activity: rule.Activity}).FirstOrCreate(&rule)
	}
}

func main() {
	hub := services.NewHub()
	notifier := services.NewNotifier(config.DB, hub)
	workOrderService := services.NewWorkOrderService(config.DB, notifier)

	digest := services.NewDigestService(config.DB, notifier)
	digest.StartScheduler()

	r := routes.SetupRouter(
		&controllers.WorkOrderController{Service: workOrderService},
		&controllers.NotificationController{Notifier: notifier, Hub: hub},
	)
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

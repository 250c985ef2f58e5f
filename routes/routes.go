package routes

import (
	"os"
	"strings"

	"labtrack-backend/config"
	"labtrack-backend/controllers"
	"labtrack-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(workOrders *controllers.WorkOrderController, notifications *controllers.NotificationController) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/metrics", config.MetricsHandler())

	auth := r.Group("/auth")
	{
		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Work order lifecycle
		wo := api.Group("/workorders")
		{
			wo.POST("", workOrders.CreateWorkOrder)
			wo.GET("", workOrders.GetWorkOrders)
			wo.GET("/:id", workOrders.GetWorkOrder)
			wo.PUT("/:id", workOrders.UpdateWorkOrder)
			wo.DELETE("/:id", workOrders.DeleteWorkOrder)
			wo.PUT("/:id/authorize", workOrders.AuthorizeWorkOrder)
			wo.PUT("/:id/deauthorize", workOrders.DeauthorizeWorkOrder)
			wo.PUT("/:id/close", workOrders.CloseWorkOrder)
			wo.GET("/:id/history", workOrders.GetWorkOrderHistory)
		}

		activities := api.Group("/activities")
		{
			activities.PUT("/:id/start", workOrders.StartActivity)
			activities.PUT("/:id/stop", workOrders.StopActivity)
		}

		// Notifications: pull, mark read and the live stream
		n := api.Group("/notifications")
		{
			n.GET("", notifications.GetNotifications)
			n.PUT("/:id/read", notifications.MarkNotificationRead)
			n.GET("/stream", notifications.StreamNotifications)
		}

		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.POST("/:id/contacts", controllers.AddContact)
		}

		// Invoice routes
		facturas := api.Group("/facturas")
		{
			facturas.POST("", controllers.CreateFactura)
			facturas.GET("", controllers.GetFacturas)
			facturas.GET("/:id", controllers.GetFactura)
		}

		// Point table routes
		points := api.Group("/pointrules")
		{
			points.POST("", controllers.CreatePointRule)
			points.GET("", controllers.GetPointRules)
			points.PUT("/:id", controllers.UpdatePointRule)
			points.DELETE("/:id", controllers.DeletePointRule)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}

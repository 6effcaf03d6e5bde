package routes

import (
	"billtrack-backend/config"
	"billtrack-backend/controllers"
	"billtrack-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/summary", controllers.GetClientOutstandingSummary)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.GET("/:id/bills", controllers.GetClientBills)
			clients.GET("/:id/statement", controllers.GetClientStatement)
			clients.GET("/:id/statement/pdf", controllers.GetClientStatementPDF)
		}

		// Bill routes
		bills := api.Group("/bills")
		{
			bills.POST("", controllers.CreateBill)
			bills.GET("", controllers.GetBills)
			bills.GET("/:id", controllers.GetBill)
			bills.PUT("/:id", controllers.UpdateBill)
			bills.DELETE("/:id", controllers.DeleteBill)

			bills.POST("/:id/payments", controllers.RecordPayment)
			bills.GET("/:id/payments", controllers.GetBillPayments)
			bills.POST("/:id/reconcile", controllers.ReconcileBill)

			bills.POST("/:id/reminder", controllers.SendReminder)
			bills.GET("/:id/reminders", controllers.GetReminderLogs)
		}

		// Payment corrections are compensating entries, never edits
		api.POST("/payments/:id/reverse", controllers.ReversePayment)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetCollectionDashboard)
	}

	return r
}

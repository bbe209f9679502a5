package routes

import (
	"cobranzas-backend/config"
	"cobranzas-backend/controllers"
	"cobranzas-backend/services"
	"cobranzas-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(reminderService *services.ReminderService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/", controllers.GetUser)
	}

	companies := r.Group("/companies")
	companies.Use(utils.AuthMiddleware())
	{
		companies.GET("/", controllers.GetMyCompany)
		companies.GET("/metrics", controllers.GetCompanyMetrics)
	}

	users := r.Group("/users")
	users.Use(utils.AuthMiddleware())
	{
		users.GET("/", controllers.GetUsers)
		users.POST("/", controllers.CreateUser)
		users.DELETE("/:id", controllers.DeleteUser)
	}

	clients := r.Group("/clients")
	clients.Use(utils.AuthMiddleware())
	{
		clients.POST("/", controllers.CreateClient)
		clients.GET("/", controllers.GetClients)
		clients.GET("/:id", controllers.GetClient)
		clients.PATCH("/:id", controllers.UpdateClient)
		clients.DELETE("/:id", controllers.DeleteClient)
	}

	tickets := r.Group("/tickets")
	{
		// Payment-portal endpoints authenticate with the ticket secret
		tickets.POST("/:id/pay", controllers.PayTicket)
		tickets.POST("/public", controllers.GetPublicTicket)

		authed := tickets.Group("")
		authed.Use(utils.AuthMiddleware())
		{
			authed.POST("/", controllers.CreateTicket)
			authed.GET("/unpaid", controllers.GetUnpaidTickets)
			authed.GET("/paid", controllers.GetPaidTickets)
			authed.GET("/by-client/:clientId", controllers.GetTicketsByClient)
			authed.GET("/:id", controllers.GetTicket)
			authed.PATCH("/:id", controllers.UpdateTicket)
			authed.DELETE("/:id", controllers.DeleteTicket)
		}
	}

	cronController := controllers.CronController{Service: reminderService}
	messages := r.Group("/messages")
	{
		messages.GET("/test-cron", cronController.Run)
		messages.GET("/webhook", controllers.VerifyWebhook)
		messages.POST("/webhook", controllers.HandleIncomingWebhook)

		authed := messages.Group("")
		authed.Use(utils.AuthMiddleware())
		{
			authed.GET("/", controllers.GetMessages)
			authed.GET("/:id", controllers.GetMessage)
		}
	}

	reminders := r.Group("/reminders")
	reminders.Use(utils.AuthMiddleware())
	{
		reminders.GET("/", controllers.GetReminders)
		reminders.POST("/", controllers.CreateReminder)
		reminders.GET("/:id", controllers.GetReminder)
		reminders.PATCH("/:id", controllers.UpdateReminder)
		reminders.DELETE("/:id", controllers.DeleteReminder)
	}

	return r
}

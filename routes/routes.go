package routes

import (
	"net/http"

	"barberledger-backend/config"
	"barberledger-backend/controllers"
	"barberledger-backend/logger"
	"barberledger-backend/metrics"
	"barberledger-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router collects everything SetupRouter wires into the engine.
type Router struct {
	Auth         *controllers.AuthController
	Clients      *controllers.ClientController
	Appointments *controllers.AppointmentController
	Reports      *controllers.ReportController
	Settings     *controllers.SettingsController
	Reengagement *controllers.ReengagementController

	Tokens      *utils.TokenIssuer
	Log         *logger.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

func SetupRouter(rt *Router) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     rt.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(rt.Log, rt.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rt.Gatherer, promhttp.HandlerOpts{})))

	auth := r.Group("/auth")
	{
		auth.POST("/register", rt.Auth.Register)
		auth.POST("/login", rt.Auth.Login)
		auth.GET("/me", rt.Tokens.AuthMiddleware(), rt.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(rt.Tokens.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", rt.Clients.CreateClient)
			clients.GET("", rt.Clients.GetClients)
			clients.GET("/inactive", rt.Clients.GetInactiveClients)
			clients.GET("/:id", rt.Clients.GetClient)
			clients.PUT("/:id", rt.Clients.UpdateClient)
			clients.DELETE("/:id", rt.Clients.DeleteClient)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", rt.Appointments.CreateAppointment)
			appointments.GET("", rt.Appointments.GetAppointments)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/daily", rt.Reports.GetDailyReport)
			reports.GET("/monthly", rt.Reports.GetMonthlyReport)
		}

		api.GET("/settings", rt.Settings.GetSettings)
		api.PUT("/settings", rt.Settings.UpdateSettings)

		api.GET("/reengagement", rt.Reengagement.GetTargets)
	}

	return r
}

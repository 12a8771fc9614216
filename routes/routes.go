package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"conciergerie-backend/config"
	"conciergerie-backend/controllers"
	"conciergerie-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(config.AppConfig.CorsOrigins)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rc *controllers.ReservationController,
	mc *controllers.MissionController,
	rvc *controllers.RevenueController,
	cc *controllers.ContractController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}

		// Everything below requires a valid token; reservation mutation
		// additionally requires the admin role.
		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			reservations := authed.Group("/reservations")
			{
				reservations.GET("", rc.List)
				reservations.GET("/:id", rc.Get)

				admin := reservations.Group("")
				admin.Use(middleware.RequireAdmin())
				{
					admin.POST("", rc.Create)
					admin.PUT("/:id", rc.Update)
					admin.POST("/:id/terminate", rc.Terminate)
					admin.DELETE("/:id", rc.Delete)
					admin.POST("/bulk-cancel", rc.BulkCancel)
					admin.POST("/bulk-delete", rc.BulkDelete)
				}
			}

			missions := authed.Group("/missions")
			{
				missions.GET("", mc.List)
				missions.GET("/:id", mc.Get)
				missions.POST("", middleware.RequireAdmin(), mc.Create)
				missions.PATCH("/:id/status", mc.UpdateStatus)
			}

			authed.GET("/revenues", rvc.List)
			authed.GET("/units/:id/contracts", cc.ListByUnit)
		}
	}

	return r
}

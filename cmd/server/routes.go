package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/athan/internal/http/api/admin/endpoints"
	clientapi "github.com/Nixie-Tech-LLC/athan/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/athan/internal/logging"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, svc *timetable.Service, clock prayer.Clock, streamInterval time.Duration) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			logging.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			logging.RequestIDHeader,
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		adminapi.ScheduleModule(svc, clock),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		clientapi.PrayerModule(svc, clock, streamInterval),
	)
}

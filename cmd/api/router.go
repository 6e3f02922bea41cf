package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"b200/internal/config"
	"b200/internal/middleware"
	"b200/internal/modules/admin"
	"b200/internal/modules/calendar"
	"b200/internal/modules/reservation"
	jwtsvc "b200/internal/pkg/jwt"
)

type routerDeps struct {
	cfg          *config.Config
	jwt          *jwtsvc.Service
	hub          *calendar.Hub
	reservations *reservation.Service
	calendar     *calendar.Service
	admin        *admin.Service
}

func newRouter(d routerDeps) *gin.Engine {
	if d.cfg.AppEnv == "prod" || d.cfg.AppEnv == "production" || d.cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS(d.cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws/calendar", calendar.NewWSHandler(d.hub, d.cfg.CORSAllowedOrigins).HandleWebSocket)

	reservationHandler := reservation.NewHandler(d.reservations)
	calendarHandler := calendar.NewHandler(d.calendar)
	adminHandler := admin.NewHandler(d.admin)

	v1 := r.Group("/api/v1")
	{
		// public
		reservationHandler.RegisterRoutes(v1)
		calendarHandler.RegisterRoutes(v1)

		adminGroup := v1.Group("/admin")
		adminHandler.RegisterAuthRoutes(adminGroup)

		// protected (admin token)
		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuth(d.jwt), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(protected)
			calendarHandler.RegisterAdminRoutes(protected)
		}
	}

	return r
}

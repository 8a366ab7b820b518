package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"iwms-citizen.backend/internal/interfaces/http/handlers"
	"iwms-citizen.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	citizenHandler      *handlers.CitizenHandler
	chatProxyHandler    *handlers.ChatProxyHandler
	backendProxyHandler *handlers.BackendProxyHandler
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(middleware.CORSMiddleware())
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "iwms-citizen-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, deps routeDeps) {
	v1 := r.Group("/api/v1")
	{
		citizen := v1.Group("/citizen")
		{
			citizen.POST("/register", deps.citizenHandler.Register)
			citizen.POST("/login", deps.citizenHandler.Login)
			citizen.POST("/verify", deps.citizenHandler.Verify)
			citizen.POST("/request-otp", deps.citizenHandler.RequestOTP)
		}

		v1.POST("/chat", deps.chatProxyHandler.Chat)
		v1.Any("/backend/*path", deps.backendProxyHandler.Forward)
	}
}

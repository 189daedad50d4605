package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopbot-backend/internal/shared/middleware"
	"shopbot-backend/internal/shared/response"
	"shopbot-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		v1.GET("/products", c.CatalogHandler.ListProducts)

		v1.POST("/sessions", c.ChatHandler.CreateSession)

		authed := v1.Group("")
		authed.Use(middleware.SessionAuth(c.JWTManager))
		{
			authed.POST("/chat", c.ChatHandler.Chat)
			authed.GET("/cart", c.ChatHandler.Cart)
			authed.DELETE("/sessions", c.ChatHandler.Reset)
		}
	}

	return router
}

// healthCheckHandler reports the app plus the optional backends.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":      "ok",
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
		}

		if c.DB != nil {
			if err := c.DB.Ping(ctx.Request.Context()); err != nil {
				status["status"] = "degraded"
				status["database"] = err.Error()
			} else {
				status["database"] = "ok"
			}
		}
		if c.Cache != nil {
			if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
			} else {
				status["redis"] = "ok"
			}
		}

		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(ctx, code, status)
	}
}

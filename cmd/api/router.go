package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/shared/middleware"
	"inventory-backend/internal/shared/response"
	"inventory-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		setupItemRoutes(v1, c)
	}

	return router
}

// ========================================
// ITEM ROUTES
// ========================================
func setupItemRoutes(v1 *gin.RouterGroup, c *container.Container) {
	items := v1.Group("/items")
	{
		items.POST("", c.ItemHandler.CreateItem)
		items.GET("", c.ItemHandler.ListItems)
		items.GET("/:id", c.ItemHandler.GetItem)
		items.PATCH("/:id", c.ItemHandler.UpdateItem)
		items.DELETE("/:id", c.ItemHandler.DeleteItem)
		items.GET("/:id/photo", c.ItemHandler.GetPhoto)
		items.PUT("/:id/photo", c.ItemHandler.ReplacePhoto)
	}

	// Registered outside /items so the path cannot collide with the
	// :id wildcard.
	v1.GET("/search", c.ItemHandler.SearchItem)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if err := c.Redis.HealthCheck(ctx.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}

		if err := c.Storage.HealthCheck(ctx.Request.Context()); err != nil {
			checks["storage"] = err.Error()
			healthy = false
		} else {
			checks["storage"] = "ok"
		}

		if !healthy {
			ctx.JSON(http.StatusServiceUnavailable, response.Response{
				Success: false,
				Data:    checks,
			})
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}

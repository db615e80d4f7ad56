package main

import (
	"net/http"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"

	"github.com/gin-gonic/gin"
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

		setupCatalogRoutes(v1, c)
		setupBorrowingRoutes(v1, c)
		setupPatronRoutes(v1, c)
	}

	return router
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.CatalogHandler.AddBook)
		books.GET("/search", c.CatalogHandler.SearchBooks)
	}
}

func setupBorrowingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/borrow", c.BorrowingHandler.BorrowBook)
	v1.POST("/return", c.BorrowingHandler.ReturnBook)
}

func setupPatronRoutes(v1 *gin.RouterGroup, c *container.Container) {
	patrons := v1.Group("/patrons")
	{
		patrons.GET("/:patron_id/late-fee", c.BorrowingHandler.LateFee)
		patrons.GET("/:patron_id/report", c.ReportingHandler.PatronReport)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(gc *gin.Context) {
		ctx := gc.Request.Context()

		status := gin.H{
			"status":      "ok",
			"environment": c.Config.App.Environment,
			"version":     c.Config.App.Version,
		}

		if err := c.DB.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		} else {
			status["database"] = "up"
		}

		if err := c.Cache.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["cache"] = err.Error()
		} else {
			status["cache"] = "up"
		}

		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		gc.JSON(code, status)
	}
}

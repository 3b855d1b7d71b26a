package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/container"
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

		setupCMSRoutes(v1, c)
		setupDiscoveryRoutes(v1, c)
		setupIngestionRoutes(v1, c)
	}

	return router
}

// CMS routes mutate the catalog and require an editor token.
func setupCMSRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cms := v1.Group("/cms")
	cms.Use(middleware.Auth(c.JWTManager))
	{
		programs := cms.Group("/programs")
		{
			programs.POST("", c.ProgramHandler.Create)
			programs.GET("", c.ProgramHandler.List)
			programs.GET("/:id", c.ProgramHandler.Get)
			programs.PATCH("/:id", c.ProgramHandler.Update)
			programs.DELETE("/:id", c.ProgramHandler.Delete)
			programs.POST("/:id/publish", c.ProgramHandler.Publish)
			programs.POST("/:id/archive", c.ProgramHandler.Archive)
		}

		contents := cms.Group("/contents")
		{
			contents.POST("", c.ContentHandler.Create)
			contents.GET("", c.ContentHandler.List)
			contents.GET("/:id", c.ContentHandler.Get)
			contents.PATCH("/:id", c.ContentHandler.Update)
			contents.DELETE("/:id", c.ContentHandler.Delete)
			contents.POST("/:id/publish", c.ContentHandler.Publish)
			contents.POST("/:id/archive", c.ContentHandler.Archive)
		}
	}
}

// Discovery routes are the public read surface. No auth.
func setupDiscoveryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	discovery := v1.Group("/discovery")
	{
		discovery.GET("/programs", c.DiscoveryHandler.ListPrograms)
		discovery.GET("/programs/:id", c.DiscoveryHandler.GetProgram)
		discovery.GET("/programs/:id/contents", c.DiscoveryHandler.ProgramContents)
		discovery.GET("/contents", c.DiscoveryHandler.ListContents)
		discovery.GET("/contents/:id", c.DiscoveryHandler.GetContent)
		discovery.GET("/search", c.DiscoveryHandler.Search)
		discovery.GET("/search/programs", c.DiscoveryHandler.SearchPrograms)
		discovery.GET("/search/contents", c.DiscoveryHandler.SearchContents)
	}
}

func setupIngestionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	ingestion := v1.Group("/ingestion")
	ingestion.Use(middleware.Auth(c.JWTManager))
	{
		ingestion.POST("/import", c.IngestionHandler.Import)
		ingestion.GET("/sources", c.IngestionHandler.Sources)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "down"
			response.Success(ctx, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "up"

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status["cache"] = "down"
		} else {
			status["cache"] = "up"
		}

		response.Success(ctx, http.StatusOK, status)
	}
}

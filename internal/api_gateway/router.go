package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/api_gateway/handler"
	"github.com/household-ledger/internal/api_gateway/middleware"
)

// handlers groups the route targets of the API
type handlers struct {
	accounts   *handler.AccountHandler
	entries    *handler.EntryHandler
	categories *handler.CategoryHandler
	options    *handler.OptionsHandler
}

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, h handlers, sessions middleware.SessionProvider) {
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		v1.PUT("/options/init", h.options.Init)

		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", h.accounts.List)
			accounts.POST("", h.accounts.Create)
			accounts.GET("/:id", h.accounts.GetByID)
			accounts.GET("/:id/entries", h.entries.ListByAccount)
			accounts.GET("/:id/entries/count", h.entries.CountByAccount)
			accounts.POST("/:id/entries/import", h.entries.Import)
		}

		// Entry operations
		entries := v1.Group("/entries")
		{
			entries.POST("", h.entries.Create)
			entries.GET("/:id", h.entries.GetByID)
			entries.PUT("/:id", h.entries.Update)
			entries.DELETE("/:id", h.entries.Delete)
		}

		// Category tree, needs an initialized ledger
		categories := v1.Group("/categories", middleware.Session(logger, sessions))
		{
			categories.GET("", h.categories.List)
			categories.POST("", h.categories.Create)
			categories.GET("/tree", h.categories.Tree)
			categories.PUT("/tree", h.categories.SaveTree)
			categories.GET("/root", h.categories.Root)
			categories.GET("/split", h.categories.Split)
			categories.DELETE("/:id", h.categories.Delete)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}

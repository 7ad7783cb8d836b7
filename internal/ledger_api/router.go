package ledger_api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/handler"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	orgHandler *handler.OrgHandler,
	journalHandler *handler.JournalHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Chart of accounts
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.GET("/:id/ledger", accountHandler.GetLedger)
		}

		// Funds
		funds := v1.Group("/funds")
		{
			funds.POST("", orgHandler.CreateFund)
			funds.GET("", orgHandler.ListFunds)
			funds.GET("/:id", orgHandler.GetFund)
		}

		// Entity units
		units := v1.Group("/units")
		{
			units.POST("", orgHandler.CreateUnit)
			units.GET("", orgHandler.ListUnits)
			units.GET("/:id", orgHandler.GetUnit)
		}

		// Journal entries
		entries := v1.Group("/journal-entries")
		{
			entries.POST("", journalHandler.Create)
			entries.POST("/transfers", journalHandler.Transfer)
			entries.GET("/:id", journalHandler.GetByID)
			entries.PUT("/:id", journalHandler.Update)
			entries.POST("/:id/post", journalHandler.Post)
			entries.POST("/:id/lock", journalHandler.Lock)
			entries.POST("/:id/unlock", journalHandler.Unlock)
		}

		// Reports
		reports := v1.Group("/reports")
		{
			reports.GET("/digest", reportHandler.GetDigest)
			reports.GET("/summary", reportHandler.GetSummary)
			reports.GET("/snapshots", reportHandler.ListSnapshots)
			reports.GET("/snapshots/:id", reportHandler.GetSnapshot)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}

package routes

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"procintel/internal/config"
	"procintel/internal/controllers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// SetupRouter initializes all services, controllers, and API routes
func SetupRouter(db *gorm.DB, cfg *config.Config, asynqClient *asynq.Client) *gin.Engine {
	procurementController := controllers.ProcurementController{DB: db}
	scrapeController := controllers.ScrapeController{DB: db, AsynqClient: asynqClient}

	// Set up Gin router
	router := gin.Default()

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	// Group API routes under /api/v1
	api := router.Group("/api/v1")
	api.Use(tokenAuth(cfg))
	{
		api.GET("/procurements", procurementController.SearchProcurements)
		api.GET("/awards", procurementController.GetAwards)
		api.POST("/matches", procurementController.MatchKeyword)
		api.GET("/export", procurementController.ExportCombined)

		api.POST("/scrape", scrapeController.TriggerScrape)
		api.GET("/scrape/runs", scrapeController.ListScrapeRuns)
	}

	return router
}

// tokenAuth enforces a static bearer token with a constant-time compare.
// An empty configured token disables the check.
func tokenAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APIToken == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || !hmac.Equal([]byte(token), []byte(cfg.APIToken)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}

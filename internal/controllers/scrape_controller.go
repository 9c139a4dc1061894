package controllers

import (
	"log"
	"net/http"
	"strconv"

	"procintel/internal/models"
	"procintel/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// ScrapeController triggers scrape runs and exposes the run ledger.
type ScrapeController struct {
	DB          *gorm.DB
	AsynqClient *asynq.Client
}

// TriggerScrape enqueues a scrape task. An optional "pages" query param
// overrides the configured page count.
func (sc *ScrapeController) TriggerScrape(c *gin.Context) {
	var pages *int
	if raw := c.Query("pages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pages must be a positive integer"})
			return
		}
		pages = &n
	}

	task, err := tasks.NewScrapeAwardsTask(pages)
	if err != nil {
		log.Printf("failed to create scrape task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	info, err := sc.AsynqClient.Enqueue(task)
	if err != nil {
		log.Printf("failed to enqueue scrape task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": info.ID,
		"queue":   info.Queue,
	})
}

// ListScrapeRuns returns recent scrape runs, newest first.
func (sc *ScrapeController) ListScrapeRuns(c *gin.Context) {
	ctx := c.Request.Context()
	limit := getLimitWithDefault(c, 20)

	runs, err := gorm.G[models.ScrapeRun](sc.DB).Order("started_at DESC").Limit(limit).Find(ctx)
	if err != nil {
		log.Printf("failed to list scrape runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs": runs,
	})
}

package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"procintel/internal/config"
	"procintel/internal/models"
	"procintel/internal/pkg/cityrecord"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	DB     *gorm.DB
	config *config.Config
	client *cityrecord.Client
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(db *gorm.DB, cfg *config.Config) *TaskProcessor {
	return &TaskProcessor{
		DB:     db,
		config: cfg,
		client: cityrecord.New(
			cfg.CityRecordBaseURL,
			cfg.ScrapeCookie,
			cfg.ScrapeUserAgent,
			time.Duration(cfg.ScrapeTimeoutSeconds)*time.Second,
		),
	}
}

func (p *TaskProcessor) GetCityRecordClient() *cityrecord.Client {
	return p.client
}

// HandleScrapeAwardsTask fetches every listing page in order, parses the
// notice blocks, and reconciles them into the awards table in a single
// transaction. Page-level failures never abort the run; a storage failure
// does, and leaves the table untouched.
func (p *TaskProcessor) HandleScrapeAwardsTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Scraping procurement awards")

	var payload ScrapeAwardsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	pages := p.config.ScrapePages
	if payload.Pages != nil && *payload.Pages > 0 {
		pages = *payload.Pages
	}

	run := models.ScrapeRun{
		StartedAt:      time.Now().UTC(),
		PagesAttempted: pages,
		Status:         models.ScrapeRunRunning,
	}
	if err := p.DB.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to create scrape run: %w", err)
	}

	docs, transportErrors := p.client.FetchAllPages(pages)

	var notices []cityrecord.Notice
	pagesEmpty := 0
	parseFailures := 0
	for i, doc := range docs {
		if len(doc) == 0 {
			pagesEmpty++
			continue
		}

		pageNotices, failures, err := cityrecord.ParsePage(doc)
		if err != nil {
			log.Printf("failed to parse page %d: %v", i+1, err)
			pagesEmpty++
			continue
		}

		parseFailures += failures
		if len(pageNotices) == 0 {
			pagesEmpty++
			continue
		}
		notices = append(notices, pageNotices...)
	}

	inserted, updated, err := p.applyNotices(ctx, notices)

	run.PagesEmpty = pagesEmpty
	run.TransportErrors = transportErrors
	run.ParseFailures = parseFailures
	run.Inserted = inserted
	run.Updated = updated
	finished := time.Now().UTC()
	run.FinishedAt = &finished

	if err != nil {
		run.Status = models.ScrapeRunFailed
		run.Error = err.Error()
		if saveErr := p.DB.WithContext(ctx).Save(&run).Error; saveErr != nil {
			log.Printf("failed to record failed scrape run: %v", saveErr)
		}
		return fmt.Errorf("persistence failed: %w", err)
	}

	run.Status = models.ScrapeRunSucceeded
	if err := p.DB.WithContext(ctx).Save(&run).Error; err != nil {
		return fmt.Errorf("failed to finalize scrape run: %w", err)
	}

	log.Printf("scrape complete: pages=%d empty=%d transport_errors=%d parse_failures=%d inserted=%d updated=%d",
		pages, pagesEmpty, transportErrors, parseFailures, inserted, updated)

	return nil
}

// applyNotices upserts every notice keyed by title inside one transaction:
// other readers see either the pre-run table or the fully reconciled one.
// The conflict clause leans on the unique index, so concurrent runs cannot
// race a lookup into duplicate rows; the pre-count exists only to split the
// insert/update tally.
func (p *TaskProcessor) applyNotices(ctx context.Context, notices []cityrecord.Notice) (inserted, updated int, err error) {
	if len(notices) == 0 {
		return 0, 0, nil
	}

	err = p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, n := range notices {
			var existing int64
			if err := tx.Model(&models.Award{}).Where("title = ?", n.Title).Count(&existing).Error; err != nil {
				return err
			}

			award := models.Award{
				Agency:      n.Agency,
				Title:       n.Title,
				AwardDate:   n.AwardDate,
				Description: n.Description,
				Category:    n.Category,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "title"}},
				DoUpdates: clause.AssignmentColumns([]string{"agency", "award_date", "description", "category", "updated_at"}),
			}).Create(&award).Error; err != nil {
				return err
			}

			if existing > 0 {
				updated++
			} else {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return inserted, updated, nil
}

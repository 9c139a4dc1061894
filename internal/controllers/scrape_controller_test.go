package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"procintel/internal/config"
	"procintel/internal/db"
	"procintel/internal/models"
	"procintel/internal/routes"
	"procintel/internal/testhelpers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func createScrapeRun(dbConn *gorm.DB, ctx context.Context, run *models.ScrapeRun) {
	result := gorm.WithResult()
	Expect(gorm.G[models.ScrapeRun](dbConn, result).Create(ctx, run)).To(Succeed())
	Expect(result.RowsAffected).To(Equal(int64(1)))
}

var _ = Describe("ScrapeController", func() {
	var (
		dbConn *gorm.DB
		cfg    *config.Config
		router *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		var err error
		cfg, err = config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		dbConn, err = db.InitDB(cfg.DatabaseURL)
		if err != nil {
			Skip("database not available: " + err.Error())
		}

		Expect(db.Migrate(dbConn)).To(Succeed())
		testhelpers.CleanupDB(dbConn)

		cfg.APIToken = ""
		router = routes.SetupRouter(dbConn, cfg, nil)
	})

	Describe("POST /api/v1/scrape", func() {
		It("rejects a non-positive pages override before enqueueing", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape?pages=0", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a non-numeric pages override before enqueueing", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape?pages=many", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("enqueues a scrape task and reports its id", func() {
			redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
			Expect(err).NotTo(HaveOccurred())

			asynqClient := asynq.NewClient(redisOpt)
			defer asynqClient.Close()

			enqueuing := routes.SetupRouter(dbConn, cfg, asynqClient)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape?pages=2", nil)
			resp := httptest.NewRecorder()
			enqueuing.ServeHTTP(resp, req)

			if resp.Code == http.StatusInternalServerError {
				Skip("redis not available")
			}

			Expect(resp.Code).To(Equal(http.StatusAccepted))
			var body struct {
				TaskID string `json:"task_id"`
				Queue  string `json:"queue"`
			}
			Expect(json.Unmarshal(resp.Body.Bytes(), &body)).To(Succeed())
			Expect(body.TaskID).NotTo(BeEmpty())
			Expect(body.Queue).To(Equal("default"))

			inspector := asynq.NewInspector(redisOpt)
			defer inspector.Close()
			Expect(inspector.DeleteTask(body.Queue, body.TaskID)).To(Succeed())
		})
	})

	Describe("GET /api/v1/scrape/runs", func() {
		It("lists runs newest first", func() {
			ctx := context.Background()
			base := time.Date(2024, 11, 18, 12, 0, 0, 0, time.UTC)
			createScrapeRun(dbConn, ctx, &models.ScrapeRun{
				StartedAt: base,
				Status:    models.ScrapeRunSucceeded,
				Inserted:  4,
			})
			createScrapeRun(dbConn, ctx, &models.ScrapeRun{
				StartedAt: base.Add(24 * time.Hour),
				Status:    models.ScrapeRunFailed,
				Error:     "persistence failed",
			})
			createScrapeRun(dbConn, ctx, &models.ScrapeRun{
				StartedAt: base.Add(48 * time.Hour),
				Status:    models.ScrapeRunRunning,
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/runs", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			Expect(resp.Code).To(Equal(http.StatusOK))
			var body struct {
				Runs []models.ScrapeRun `json:"runs"`
			}
			Expect(json.Unmarshal(resp.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Runs).To(HaveLen(3))
			Expect(body.Runs[0].Status).To(Equal(models.ScrapeRunRunning))
			Expect(body.Runs[1].Status).To(Equal(models.ScrapeRunFailed))
			Expect(body.Runs[2].Status).To(Equal(models.ScrapeRunSucceeded))
		})

		It("honors the limit parameter", func() {
			ctx := context.Background()
			base := time.Date(2024, 11, 18, 12, 0, 0, 0, time.UTC)
			for i := 0; i < 3; i++ {
				createScrapeRun(dbConn, ctx, &models.ScrapeRun{
					StartedAt: base.Add(time.Duration(i) * time.Hour),
					Status:    models.ScrapeRunSucceeded,
				})
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/runs?limit=2", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			Expect(resp.Code).To(Equal(http.StatusOK))
			var body struct {
				Runs []models.ScrapeRun `json:"runs"`
			}
			Expect(json.Unmarshal(resp.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Runs).To(HaveLen(2))
		})
	})
})

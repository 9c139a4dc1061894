package controllers

import (
	"log"
	"net/http"
	"strconv"

	"procintel/internal/export"
	"procintel/internal/match"
	"procintel/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProcurementController serves the read path: filtered procurement search,
// the awards table, keyword cross-matching, and the combined CSV export.
type ProcurementController struct {
	DB *gorm.DB
}

// SearchProcurements returns procurement rows matching the query filters.
// At least one filter must be present — an unfiltered search is refused.
func (pc *ProcurementController) SearchProcurements(c *gin.Context) {
	ctx := c.Request.Context()

	query, applied := pc.filteredQuery(c)
	if !applied {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Apply at least one filter"})
		return
	}

	var procurements []models.Procurement
	if err := query.WithContext(ctx).Find(&procurements).Error; err != nil {
		log.Printf("failed to search procurements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"procurements": procurements,
	})
}

// GetAwards returns the persisted awards table.
func (pc *ProcurementController) GetAwards(c *gin.Context) {
	ctx := c.Request.Context()
	limit := getLimitWithDefault(c, 1000)

	awards, err := gorm.G[models.Award](pc.DB).Order("id").Limit(limit).Find(ctx)
	if err != nil {
		log.Printf("failed to get awards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"awards": awards,
	})
}

type matchRequest struct {
	Keyword        string `json:"keyword"`
	ProcurementIDs []uint `json:"procurement_ids"`
}

// MatchKeyword cross-references the caller's selected procurement rows and
// the full awards table against one keyword. Procurement matches (services
// description) come first, award matches (title) after, each tagged with
// its source collection.
func (pc *ProcurementController) MatchKeyword(c *gin.Context) {
	ctx := c.Request.Context()

	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var procurements []models.Procurement
	if len(req.ProcurementIDs) > 0 {
		if err := pc.DB.WithContext(ctx).Where("id IN ?", req.ProcurementIDs).Order("id").Find(&procurements).Error; err != nil {
			log.Printf("failed to load selected procurements: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
	}

	awards, err := gorm.G[models.Award](pc.DB).Order("id").Find(ctx)
	if err != nil {
		log.Printf("failed to load awards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	candidates := make([]match.Candidate, 0, len(procurements)+len(awards))
	for _, p := range procurements {
		candidates = append(candidates, match.Candidate{
			Text:   p.ServicesDescription,
			Source: match.SourceProcurement,
			Record: p,
		})
	}
	for _, a := range awards {
		candidates = append(candidates, match.Candidate{
			Text:   a.Title,
			Source: match.SourceAward,
			Record: a,
		})
	}

	matched := match.Matcher{}.Match(req.Keyword, candidates)

	results := make([]gin.H, 0, len(matched))
	for _, m := range matched {
		results = append(results, gin.H{
			"source": m.Source,
			"record": m.Record,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": results,
	})
}

// ExportCombined streams the filtered procurement rows plus the full awards
// table as one CSV attachment, with missing columns filled as "N/A".
func (pc *ProcurementController) ExportCombined(c *gin.Context) {
	ctx := c.Request.Context()

	query, applied := pc.filteredQuery(c)
	if !applied {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Apply at least one filter"})
		return
	}

	var procurements []models.Procurement
	if err := query.WithContext(ctx).Find(&procurements).Error; err != nil {
		log.Printf("failed to search procurements for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	awards, err := gorm.G[models.Award](pc.DB).Order("id").Find(ctx)
	if err != nil {
		log.Printf("failed to load awards for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	data, err := export.CombinedCSV(procurements, awards)
	if err != nil {
		log.Printf("failed to build csv: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="combined_data.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// filteredQuery builds the procurement SELECT from optional query params.
// keyword is a substring match on the services description; everything else
// is an equality predicate.
func (pc *ProcurementController) filteredQuery(c *gin.Context) (*gorm.DB, bool) {
	query := pc.DB.Model(&models.Procurement{}).Order("id")
	applied := false

	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("services_description LIKE ?", "%"+keyword+"%")
		applied = true
	}
	if agency := c.Query("agency"); agency != "" {
		query = query.Where("agency = ?", agency)
		applied = true
	}
	if method := c.Query("procurement_method"); method != "" {
		query = query.Where("procurement_method = ?", method)
		applied = true
	}
	if quarter := c.Query("fiscal_quarter"); quarter != "" {
		query = query.Where("fiscal_quarter = ?", quarter)
		applied = true
	}
	if titles := c.Query("job_titles"); titles != "" {
		query = query.Where("job_titles = ?", titles)
		applied = true
	}
	if headCount := c.Query("head_count"); headCount != "" {
		query = query.Where("head_count = ?", headCount)
		applied = true
	}

	return query, applied
}

func getLimitWithDefault(c *gin.Context, defaultValue int) int {
	var err error
	limit := defaultValue
	if c.Query("limit") != "" {
		limit, err = strconv.Atoi(c.Query("limit"))
		if err != nil {
			log.Printf("failed to parse limit: %v, using default value: %d", err, defaultValue)
			return defaultValue
		}
	}
	return limit
}

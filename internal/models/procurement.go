package models

import "time"

// Procurement mirrors the fiscal-year procurement plan table. This service
// only reads it; rows are loaded out of band.
type Procurement struct {
	ID                  uint   `gorm:"primaryKey"`
	Agency              string `json:"agency"`
	ServicesDescription string `json:"services_description"`
	ProcurementMethod   string `json:"procurement_method"`
	FiscalQuarter       string `json:"fiscal_quarter"`
	JobTitles           string `json:"job_titles"`
	HeadCount           string `json:"head_count"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

package models

import "time"

// ScrapeRun statuses.
const (
	ScrapeRunRunning   = "running"
	ScrapeRunSucceeded = "succeeded"
	ScrapeRunFailed    = "failed"
)

// ScrapeRun is the ledger row written for every scrape invocation, so
// operators can see what a run did without re-deriving it from the awards
// table.
type ScrapeRun struct {
	ID              uint       `gorm:"primaryKey"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	PagesAttempted  int        `json:"pages_attempted"`
	PagesEmpty      int        `json:"pages_empty"` // pages yielding zero notices, expired cookies included
	TransportErrors int        `json:"transport_errors"`
	ParseFailures   int        `json:"parse_failures"`
	Inserted        int        `json:"inserted"`
	Updated         int        `json:"updated"`
	Status          string     `json:"status"`
	Error           string     `json:"error"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

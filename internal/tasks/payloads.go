package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// This file defines the "types" and "payloads" for our async tasks.

// Task type names
const (
	TypeTaskScrapeAwards = "task:scrape_awards"
)

// ScrapeAwardsPayload is the data a scrape job needs to run. Pages overrides
// the configured page count when set.
type ScrapeAwardsPayload struct {
	Pages *int `json:"pages"`
}

// NewScrapeAwardsTask creates a new task for asynq
func NewScrapeAwardsTask(pages *int) (*asynq.Task, error) {
	payload := ScrapeAwardsPayload{
		Pages: pages,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskScrapeAwards, payloadBytes), nil
}

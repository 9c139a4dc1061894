package models

import "time"

// Award is one procurement award notice scraped from the City Record.
// Title is the natural key: the source site exposes no stable id, so a
// re-scraped title overwrites every other field on its existing row.
type Award struct {
	ID          uint   `gorm:"primaryKey"`
	Agency      string `json:"agency"`
	Title       string `gorm:"uniqueIndex" json:"title"`
	AwardDate   string `json:"award_date"` // free-form as scraped, not a parsed date
	Description string `json:"description"`
	Category    string `json:"category"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

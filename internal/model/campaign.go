package model

import "time"

// Campaign is a marketing campaign tracked by the admissions office.
// This service reads campaigns; their lifecycle is managed elsewhere.
type Campaign struct {
	ID        int64
	Name      string
	Channel   string
	Status    string
	Budget    float64
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

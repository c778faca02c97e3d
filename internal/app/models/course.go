package models

import "time"

// Course is one catalog entry, based on the 'courses' table. The code is
// unique case-insensitively.
type Course struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Title     string    `json:"title" db:"title"`
	Unit      int       `json:"unit" db:"unit"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

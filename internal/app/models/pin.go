package models

import "time"

// CoursePin is a single-use registration token scoped to one course code,
// based on the 'course_pins' table. Its only transition is unused -> used;
// the flip happens as a conditional update at the storage layer.
type CoursePin struct {
	ID          int64      `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	CourseCode  string     `json:"courseCode" db:"course_code"`
	CourseTitle string     `json:"courseTitle" db:"course_title"`
	Used        bool       `json:"used" db:"used"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UsedAt      *time.Time `json:"usedAt,omitempty" db:"used_at"`
}

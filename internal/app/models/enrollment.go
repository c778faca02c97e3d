package models

import "time"

// Enrollment associates a matriculation number with a course code, based
// on the 'enrollments' table. At most one registration per (student,
// course), enforced by a unique index. PinCode is kept as a historical
// string; deleting the pin later does not cascade here.
type Enrollment struct {
	ID           int64     `json:"id" db:"id"`
	MatricNumber string    `json:"matricNumber" db:"matric_number"`
	CourseCode   string    `json:"courseCode" db:"course_code"`
	CourseTitle  string    `json:"courseTitle" db:"course_title"`
	PinCode      string    `json:"pinCode" db:"pin_code"`
	Session      string    `json:"session,omitempty" db:"session"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

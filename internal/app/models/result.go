package models

import "time"

// Result is one graded (student, course) tuple based on the 'results'
// table. Grade is derived from the score when the source did not supply it.
type Result struct {
	ID           int64     `json:"id" db:"id"`
	MatricNumber string    `json:"matricNumber" db:"matric_number"`
	CourseCode   string    `json:"courseCode" db:"course_code"`
	CourseTitle  string    `json:"courseTitle" db:"course_title"`
	Department   string    `json:"department,omitempty" db:"department"`
	Level        string    `json:"level,omitempty" db:"level"`
	Score        float64   `json:"score" db:"score"`
	Grade        string    `json:"grade" db:"grade"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// DeriveGrade maps a numeric score to its letter grade by the fixed
// threshold table: >=70 A, >=60 B, >=50 C, >=45 D, >=40 E, else F.
func DeriveGrade(score float64) string {
	switch {
	case score >= 70:
		return "A"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C"
	case score >= 45:
		return "D"
	case score >= 40:
		return "E"
	default:
		return "F"
	}
}

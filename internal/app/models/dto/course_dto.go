package dto

// CreateCourseRequest adds one course to the catalog.
type CreateCourseRequest struct {
	Code  string `json:"code" binding:"required"`
	Title string `json:"title" binding:"required"`
	Unit  int    `json:"unit" validate:"gte=0,lte=10"`
}

// GeneratePinsRequest creates a batch of single-use pins for a course.
type GeneratePinsRequest struct {
	CourseCode string `json:"courseCode" binding:"required"`
	Count      int    `json:"count" binding:"required" validate:"gte=1,lte=1000"`
}

// EnrollRequest registers a student for a course, gated by a pin.
type EnrollRequest struct {
	MatricNumber string `json:"matricNumber" binding:"required"`
	CourseCode   string `json:"courseCode" binding:"required"`
	PinCode      string `json:"pinCode" binding:"required"`
	Session      string `json:"session"`
}

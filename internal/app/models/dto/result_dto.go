package dto

// ResultRequest records a single result. Grade is optional; when absent it
// is derived from the score.
type ResultRequest struct {
	MatricNumber string  `json:"matricNumber" binding:"required"`
	CourseCode   string  `json:"courseCode" binding:"required"`
	Department   string  `json:"department"`
	Level        string  `json:"level"`
	Score        float64 `json:"score" validate:"gte=0,lte=100"`
	Grade        string  `json:"grade"`
}

// PaymentRequest records one append-only payment ledger entry. Reference
// is the caller-supplied unique payment id.
type PaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Purpose   string `json:"purpose" binding:"required"`
	AmountNGN int64  `json:"amount" binding:"required" validate:"gt=0"`
}

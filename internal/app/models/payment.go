package models

import "time"

// Payment is one append-only ledger entry keyed by a caller-supplied
// unique reference, based on the 'payments' table. Rows are never updated
// after insert.
type Payment struct {
	ID        int64     `json:"id" db:"id"`
	Reference string    `json:"reference" db:"reference"`
	Email     string    `json:"email" db:"email"`
	Purpose   string    `json:"purpose" db:"purpose"`
	AmountNGN int64     `json:"amount" db:"amount_kobo"` // stored in kobo
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

package models

import "time"

// DocumentBundle is the per-student set of uploaded-document references
// and exam metadata, based on the 'document_bundles' table. One bundle per
// identity, written with upsert-on-conflict.
type DocumentBundle struct {
	ID                  int64     `json:"id" db:"id"`
	IdentityID          int64     `json:"identityId" db:"identity_id"`
	BirthCertificateURL string    `json:"birthCertificateUrl,omitempty" db:"birth_certificate_url"`
	OLevelResultURL     string    `json:"oLevelResultUrl,omitempty" db:"olevel_result_url"`
	JAMBResultURL       string    `json:"jambResultUrl,omitempty" db:"jamb_result_url"`
	OLevelExamType      string    `json:"oLevelExamType,omitempty" db:"olevel_exam_type"`
	OLevelExamNumber    string    `json:"oLevelExamNumber,omitempty" db:"olevel_exam_number"`
	OLevelExamYear      string    `json:"oLevelExamYear,omitempty" db:"olevel_exam_year"`
	JAMBRegNumber       string    `json:"jambRegNumber,omitempty" db:"jamb_reg_number"`
	JAMBScore           int       `json:"jambScore,omitempty" db:"jamb_score"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`
}

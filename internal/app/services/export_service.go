package services

import (
	"context"
	"fmt"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/pdfexport"
)

// ExportService renders composite student views to PDF. Missing passport
// images degrade to placeholders inside the renderer; one unavailable
// asset never fails an export.
type ExportService struct {
	students *StudentService
	renderer *pdfexport.Renderer
}

// NewExportService wires PDF export.
func NewExportService(students *StudentService, renderer *pdfexport.Renderer) *ExportService {
	return &ExportService{students: students, renderer: renderer}
}

// StudentSheet renders a single student's info sheet.
func (s *ExportService) StudentSheet(ctx context.Context, email string) ([]byte, error) {
	c, err := s.students.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	sheet := pdfexport.Sheet{
		Title:    "Student Information",
		PhotoURL: c.PassportURL,
		Fields: []pdfexport.Field{
			{Label: "Full Name", Value: c.FullName},
			{Label: "Email", Value: c.Email},
			{Label: "Phone", Value: c.Phone},
			{Label: "Department", Value: c.Department},
			{Label: "Level", Value: c.Level},
			{Label: "Registration Number", Value: c.RegNumber},
			{Label: "Matriculation Number", Value: c.MatricNumber},
			{Label: "Next of Kin", Value: c.NextOfKin},
			{Label: "Next of Kin Phone", Value: c.NextOfKinPhone},
			{Label: "Address", Value: c.Address},
		},
	}
	if c.Documents != nil {
		sheet.Fields = append(sheet.Fields,
			pdfexport.Field{Label: "O-Level Exam", Value: fmt.Sprintf("%s %s (%s)",
				c.Documents.OLevelExamType, c.Documents.OLevelExamNumber, c.Documents.OLevelExamYear)},
			pdfexport.Field{Label: "JAMB Reg Number", Value: c.Documents.JAMBRegNumber},
		)
	}

	out, err := s.renderer.RenderSheet(ctx, sheet)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrExportFailed, "could not render student sheet")
	}
	return out, nil
}

// StudentListing renders the bulk listing for the filtered student set.
func (s *ExportService) StudentListing(ctx context.Context, q dto.StudentListQuery) ([]byte, error) {
	composites, err := s.students.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	rows := make([]pdfexport.ListingRow, 0, len(composites))
	for _, c := range composites {
		rows = append(rows, listingRow(c))
	}

	out, err := s.renderer.RenderListing(ctx, "Registered Students", rows)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrExportFailed, "could not render student listing")
	}
	return out, nil
}

func listingRow(c models.Composite) pdfexport.ListingRow {
	return pdfexport.ListingRow{
		FullName:     c.FullName,
		MatricNumber: c.MatricNumber,
		Email:        c.Email,
		Department:   c.Department,
		Level:        c.Level,
		PhotoURL:     c.PassportURL,
	}
}

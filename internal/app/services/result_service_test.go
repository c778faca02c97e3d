package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
)

type ResultServiceSuite struct {
	suite.Suite
	ctx      context.Context
	results  *fakeResultStore
	courses  *fakeCourseStore
	profiles *fakeProfileStore
	svc      *ResultService
}

func (s *ResultServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.results = newFakeResultStore()
	s.courses = newFakeCourseStore(
		&models.Course{Code: "COS101", Title: "Introduction to Computing", Unit: 3},
		&models.Course{Code: "MTH101", Title: "Algebra", Unit: 2},
	)
	s.profiles = newFakeProfileStore()
	for i, matric := range []string{"ND/CS/001", "ND/CS/002"} {
		s.Require().NoError(s.profiles.Upsert(s.ctx, &models.StudentProfile{
			Email:        fmt.Sprintf("student%d@example.com", i+1),
			MatricNumber: matric,
		}))
	}
	s.svc = NewResultService(s.results, s.courses, s.profiles)
}

func TestResultServiceSuite(t *testing.T) {
	suite.Run(t, new(ResultServiceSuite))
}

// buildWorkbook writes a single-sheet xlsx with a header row followed by
// the given data rows.
func (s *ResultServiceSuite) buildWorkbook(rows [][]string) []byte {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			s.Require().NoError(err)
			s.Require().NoError(f.SetCellValue(sheet, name, cell))
		}
	}
	var buf bytes.Buffer
	s.Require().NoError(f.Write(&buf))
	return buf.Bytes()
}

func (s *ResultServiceSuite) TestRecordDerivesGrade() {
	cases := []struct {
		score float64
		grade string
	}{
		{70, "A"},
		{69, "B"},
		{50, "C"},
		{45, "D"},
		{44, "E"},
		{39, "F"},
	}
	for i, tc := range cases {
		got, err := s.svc.Record(s.ctx, dto.ResultRequest{
			MatricNumber: "ND/CS/" + strconv.Itoa(100+i),
			CourseCode:   "COS101",
			Score:        tc.score,
		})
		s.Require().NoError(err)
		s.Equal(tc.grade, got.Grade, "score %v", tc.score)
	}
}

func (s *ResultServiceSuite) TestRecordKeepsSuppliedGrade() {
	got, err := s.svc.Record(s.ctx, dto.ResultRequest{
		MatricNumber: "ND/CS/001",
		CourseCode:   "COS101",
		Score:        68,
		Grade:        "a",
	})
	s.Require().NoError(err)
	s.Equal("A", got.Grade)
}

func (s *ResultServiceSuite) TestRecordResolvesTitleFromCatalog() {
	got, err := s.svc.Record(s.ctx, dto.ResultRequest{
		MatricNumber: "nd/cs/001",
		CourseCode:   "cos101",
		Level:        "nd1",
		Score:        81,
	})
	s.Require().NoError(err)
	s.Equal("COS101", got.CourseCode)
	s.Equal("Introduction to Computing", got.CourseTitle)
	s.Equal("ND1", got.Level)
}

func (s *ResultServiceSuite) TestRecordRejectsUnknownCourse() {
	_, err := s.svc.Record(s.ctx, dto.ResultRequest{
		MatricNumber: "ND/CS/001",
		CourseCode:   "BIO999",
		Score:        50,
	})
	s.Require().ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *ResultServiceSuite) TestRecordRejectsOutOfRangeScore() {
	_, err := s.svc.Record(s.ctx, dto.ResultRequest{
		MatricNumber: "ND/CS/001",
		CourseCode:   "COS101",
		Score:        101,
	})
	s.Require().ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *ResultServiceSuite) TestRecordRejectsDuplicateEntry() {
	req := dto.ResultRequest{MatricNumber: "ND/CS/001", CourseCode: "COS101", Score: 55}
	_, err := s.svc.Record(s.ctx, req)
	s.Require().NoError(err)

	_, err = s.svc.Record(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrDuplicateResultEntry)
}

func (s *ResultServiceSuite) TestImportIngestsWholeSheet() {
	content := s.buildWorkbook([][]string{
		{"Matric Number", "Course Code", "Score", "Department", "Level"},
		{"ND/CS/001", "COS101", "74", "Computer Science", "ND1"},
		{"ND/CS/002", "COS101", "44", "Computer Science", "ND1"},
		{"ND/CS/001", "MTH101", "39", "Computer Science", "ND1"},
	})

	n, err := s.svc.Import(s.ctx, content)
	s.Require().NoError(err)
	s.Equal(3, n)

	got, err := s.svc.ListByMatric(s.ctx, "ND/CS/001")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	grades := map[string]string{}
	for _, r := range got {
		grades[r.CourseCode] = r.Grade
	}
	s.Equal("A", grades["COS101"])
	s.Equal("F", grades["MTH101"])
}

func (s *ResultServiceSuite) TestListByMatricRejectsUnknownStudent() {
	_, err := s.svc.ListByMatric(s.ctx, "ND/CS/999")
	s.Require().ErrorIs(err, apperrors.ErrStudentNotFound)
}

func (s *ResultServiceSuite) TestImportAcceptsShortMatricHeader() {
	content := s.buildWorkbook([][]string{
		{"Matric", "Course Code", "Score"},
		{"ND/CS/001", "COS101", "60"},
	})

	n, err := s.svc.Import(s.ctx, content)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *ResultServiceSuite) TestImportAbortsOnUnknownCourse() {
	content := s.buildWorkbook([][]string{
		{"Matric Number", "Course Code", "Score"},
		{"ND/CS/001", "COS101", "74"},
		{"ND/CS/002", "BIO999", "60"},
	})

	_, err := s.svc.Import(s.ctx, content)
	s.Require().ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(err.Error(), "row 3")

	// Nothing from the batch persists.
	got, err := s.svc.ListByMatric(s.ctx, "ND/CS/001")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *ResultServiceSuite) TestImportAbortsOnMalformedScore() {
	content := s.buildWorkbook([][]string{
		{"Matric Number", "Course Code", "Score"},
		{"ND/CS/001", "COS101", "seventy"},
	})

	_, err := s.svc.Import(s.ctx, content)
	s.Require().ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(err.Error(), "row 2")
}

func (s *ResultServiceSuite) TestImportRejectsEmptySheet() {
	content := s.buildWorkbook([][]string{
		{"Matric Number", "Course Code", "Score"},
	})

	_, err := s.svc.Import(s.ctx, content)
	s.Require().ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *ResultServiceSuite) TestImportRejectsNonSpreadsheet() {
	_, err := s.svc.Import(s.ctx, []byte("not an xlsx"))
	s.Require().ErrorIs(err, apperrors.ErrImportFailed)
}

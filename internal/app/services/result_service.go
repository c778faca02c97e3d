package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/normalize"
	"github.com/nonso/acadport/internal/pkg/spreadsheet"
)

// ResultService ingests results one at a time or from a spreadsheet batch.
type ResultService struct {
	results  ResultStore
	courses  CourseStore
	profiles ProfileStore
}

// NewResultService wires result ingestion.
func NewResultService(results ResultStore, courses CourseStore, profiles ProfileStore) *ResultService {
	return &ResultService{results: results, courses: courses, profiles: profiles}
}

// Record validates and persists a single result.
func (s *ResultService) Record(ctx context.Context, req dto.ResultRequest) (*models.Result, error) {
	res, err := s.normalizeRow(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	if err := s.results.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Import ingests a whole spreadsheet. Every row must validate: an
// unresolvable course code or malformed score aborts the import with the
// offending row identified. All rows commit in a single transaction;
// partial success is not offered.
func (s *ResultService) Import(ctx context.Context, content []byte) (int, error) {
	rows, err := spreadsheet.Parse(content)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrImportFailed, "could not read the uploaded spreadsheet")
	}
	if len(rows) == 0 {
		return 0, apperrors.NewValidation("file", "spreadsheet has no data rows")
	}

	results := make([]*models.Result, 0, len(rows))
	for i, row := range rows {
		req := dto.ResultRequest{
			MatricNumber: row.Get("matric number"),
			CourseCode:   row.Get("course code"),
			Department:   row.Get("department"),
			Level:        row.Get("level"),
			Grade:        row.Get("grade"),
		}
		if req.MatricNumber == "" {
			req.MatricNumber = row.Get("matric")
		}

		scoreStr := row.Get("score")
		if scoreStr == "" {
			return 0, apperrors.NewValidation("score", fmt.Sprintf("row %d: score is required", i+2))
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			return 0, apperrors.NewValidation("score", fmt.Sprintf("row %d: score %q is not a number", i+2, scoreStr))
		}
		req.Score = score

		res, err := s.normalizeRow(ctx, req, i+2)
		if err != nil {
			return 0, err
		}
		results = append(results, res)
	}

	if err := s.results.CreateBatch(ctx, results); err != nil {
		return 0, err
	}
	return len(results), nil
}

// ListByMatric returns all results for one student. An unknown
// matriculation number is a not-found, not an empty list.
func (s *ResultService) ListByMatric(ctx context.Context, matric string) ([]*models.Result, error) {
	matric = normalize.RegNumber(matric)
	if matric == "" {
		return nil, apperrors.NewValidation("matricNumber", "matriculation number is required")
	}
	if _, err := s.profiles.GetByMatric(ctx, matric); err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.New(apperrors.ErrStudentNotFound, "no student with that matriculation number")
		}
		return nil, err
	}
	return s.results.ListByMatric(ctx, matric)
}

// normalizeRow applies the ingestion rules to one record: trim department,
// case-normalize level, clamp-check the score, derive the grade when
// absent, and resolve the course title from the catalog. rowNum is zero
// for single submissions and the spreadsheet row number for imports.
func (s *ResultService) normalizeRow(ctx context.Context, req dto.ResultRequest, rowNum int) (*models.Result, error) {
	at := func(field, msg string) error {
		if rowNum > 0 {
			msg = fmt.Sprintf("row %d: %s", rowNum, msg)
		}
		return apperrors.NewValidation(field, msg)
	}

	matric := normalize.RegNumber(req.MatricNumber)
	if matric == "" {
		return nil, at("matricNumber", "matriculation number is required")
	}
	code := normalize.RegNumber(req.CourseCode)
	if code == "" {
		return nil, at("courseCode", "course code is required")
	}
	if req.Score < 0 || req.Score > 100 {
		return nil, at("score", "score must be between 0 and 100")
	}

	// The catalog cross-reference is a hard validation: an unknown course
	// code fails the row rather than being skipped.
	course, err := s.courses.GetByCode(ctx, code)
	if err != nil {
		if err == apperrors.ErrCourseNotFound {
			return nil, at("courseCode", fmt.Sprintf("course %s is not in the catalog", code))
		}
		return nil, err
	}

	grade := strings.ToUpper(strings.TrimSpace(req.Grade))
	if grade == "" {
		grade = models.DeriveGrade(req.Score)
	}

	return &models.Result{
		MatricNumber: matric,
		CourseCode:   course.Code,
		CourseTitle:  course.Title,
		Department:   strings.TrimSpace(req.Department),
		Level:        strings.ToUpper(strings.TrimSpace(req.Level)),
		Score:        req.Score,
		Grade:        grade,
	}, nil
}

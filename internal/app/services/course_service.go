package services

import (
	"context"
	"strings"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/normalize"
)

// CourseService manages the catalog that pins and results reference.
type CourseService struct {
	courses CourseStore
}

// NewCourseService wires the catalog.
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// Create adds one course; codes are stored uppercase.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	code := normalize.RegNumber(req.Code)
	if code == "" {
		return nil, apperrors.NewValidation("code", "course code is required")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidation("title", "course title is required")
	}

	course := &models.Course{Code: code, Title: title, Unit: req.Unit}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// List returns the whole catalog.
func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	return s.courses.List(ctx)
}

// Get resolves one course by code, case-insensitively.
func (s *CourseService) Get(ctx context.Context, code string) (*models.Course, error) {
	return s.courses.GetByCode(ctx, code)
}

// Delete removes one catalog entry.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}

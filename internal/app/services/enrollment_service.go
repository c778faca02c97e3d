package services

import (
	"context"
	"strings"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/normalize"
)

// EnrollmentService is the course registration workflow: field validation,
// the duplicate-registration guard, and pin-gated creation.
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseStore
}

// NewEnrollmentService wires the registration workflow.
func NewEnrollmentService(enrollments EnrollmentStore, courses CourseStore) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses}
}

// Register checks the workflow preconditions in order, short-circuiting on
// the first failure: required fields, then the (matric, course)
// idempotency guard, then pin redemption. The store commits the
// registration insert and the pin flip in one transaction.
func (s *EnrollmentService) Register(ctx context.Context, req dto.EnrollRequest) (*models.Enrollment, error) {
	matric := normalize.RegNumber(req.MatricNumber)
	if matric == "" {
		return nil, apperrors.NewValidation("matricNumber", "matriculation number is required")
	}
	if strings.TrimSpace(req.CourseCode) == "" {
		return nil, apperrors.NewValidation("courseCode", "course code is required")
	}
	if strings.TrimSpace(req.PinCode) == "" {
		return nil, apperrors.NewValidation("pinCode", "pin code is required")
	}

	course, err := s.courses.GetByCode(ctx, req.CourseCode)
	if err != nil {
		return nil, err
	}

	// Idempotency guard before touching the pin: a duplicate attempt must
	// be rejected as already-registered regardless of pin validity.
	registered, err := s.enrollments.Exists(ctx, matric, course.Code)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, apperrors.ErrAlreadyRegistered
	}

	enrollment := &models.Enrollment{
		MatricNumber: matric,
		CourseCode:   course.Code,
		CourseTitle:  course.Title,
		PinCode:      normalize.RegNumber(req.PinCode),
		Session:      strings.TrimSpace(req.Session),
	}
	if err := s.enrollments.CreateWithPin(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListByMatric returns all registrations for one student.
func (s *EnrollmentService) ListByMatric(ctx context.Context, matric string) ([]*models.Enrollment, error) {
	matric = normalize.RegNumber(matric)
	if matric == "" {
		return nil, apperrors.NewValidation("matricNumber", "matriculation number is required")
	}
	return s.enrollments.ListByMatric(ctx, matric)
}

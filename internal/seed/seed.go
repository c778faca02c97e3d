package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/repositories"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/logger"
)

// defaultCourses is the starter catalog. Pin batches and result imports
// both cross-reference these codes.
var defaultCourses = []models.Course{
	{Code: "GNS101", Title: "Use of English I", Unit: 2},
	{Code: "GNS102", Title: "Use of English II", Unit: 2},
	{Code: "COS101", Title: "Introduction to Computing", Unit: 3},
	{Code: "COS102", Title: "Programming I", Unit: 3},
	{Code: "MTH101", Title: "Algebra and Trigonometry", Unit: 2},
	{Code: "MTH102", Title: "Calculus", Unit: 2},
	{Code: "STA101", Title: "Introduction to Statistics", Unit: 2},
}

// CreateDefaultData seeds the course catalog on a fresh database. Courses
// that already exist are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	courseRepo := repositories.NewCourseRepository(dbPool)

	logger.Info().Msg("Checking/Creating default course catalog")
	var finalErr error
	for i := range defaultCourses {
		course := defaultCourses[i]
		err := courseRepo.Create(ctx, &course)
		if err != nil && !errors.Is(err, apperrors.ErrCourseCodeExists) {
			logger.Error().Err(err).Str("code", course.Code).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

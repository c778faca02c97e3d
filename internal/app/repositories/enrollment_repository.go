package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/dberrors"
	"github.com/nonso/acadport/internal/pkg/logger"
)

// EnrollmentRepository handles course registrations. The registration
// insert and the pin flip it depends on share one transaction: either both
// commit or neither does, so no repair pass is needed afterwards.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates an EnrollmentRepository.
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, sb: pgsb}
}

const enrollmentColumns = "id, matric_number, course_code, course_title, pin_code, session, created_at"

// CreateWithPin redeems the enrollment's pin and inserts the registration
// inside a single transaction. Pin mismatch outcomes and the duplicate
// (matric, course) guard surface as their taxonomy sentinels; any error
// rolls back both writes.
func (r *EnrollmentRepository) CreateWithPin(ctx context.Context, e *models.Enrollment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin enrollment transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := redeemPin(ctx, tx, e.PinCode, e.CourseCode); err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("enrollments").
		Columns("matric_number", "course_code", "course_title", "pin_code", "session").
		Values(e.MatricNumber, e.CourseCode, e.CourseTitle, e.PinCode, e.Session).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		if dberrors.IsUniqueViolationOn(err, "enrollments_matric_course_key") {
			// Rolling back un-redeems the pin taken above.
			return apperrors.ErrAlreadyRegistered
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit enrollment: %w", err)
	}

	logger.Info().Str("matric", e.MatricNumber).Str("courseCode", e.CourseCode).Msg("Course registration committed")
	return nil
}

// Exists reports whether (matric, course) is already registered. This is
// the workflow's fast pre-check; the unique index is the real guard.
func (r *EnrollmentRepository) Exists(ctx context.Context, matric, courseCode string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"matric_number": matric}).
		Where("UPPER(course_code) = UPPER(?)", courseCode).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment existence query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

// ListByMatric returns all registrations for one student.
func (r *EnrollmentRepository) ListByMatric(ctx context.Context, matric string) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"matric_number": matric}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var out []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.MatricNumber, &e.CourseCode, &e.CourseTitle,
			&e.PinCode, &e.Session, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

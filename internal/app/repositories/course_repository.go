package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/dberrors"
)

// CourseRepository handles the course catalog. Codes are stored uppercase
// and unique.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, sb: pgsb}
}

const courseColumns = "id, code, title, unit, created_at"

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	if err := row.Scan(&c.ID, &c.Code, &c.Title, &c.Unit, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create adds one catalog entry.
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("code", "title", "unit").
		Values(c.Code, c.Title, c.Unit).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		if dberrors.IsUniqueViolationOn(err, "courses_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByCode looks up one course, case-insensitively on the code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		Where("UPPER(code) = UPPER(?)", code).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return c, nil
}

// List returns the whole catalog ordered by code.
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var out []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes one catalog entry by id.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

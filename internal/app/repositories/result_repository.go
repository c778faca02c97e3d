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

// ResultRepository handles graded results.
type ResultRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResultRepository creates a ResultRepository.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db, sb: pgsb}
}

// Create inserts a single result row.
func (r *ResultRepository) Create(ctx context.Context, res *models.Result) error {
	sql, args, err := r.sb.Insert("results").
		Columns("matric_number", "course_code", "course_title", "department", "level", "score", "grade").
		Values(res.MatricNumber, res.CourseCode, res.CourseTitle, res.Department, res.Level, res.Score, res.Grade).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create result query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		if dberrors.IsUniqueViolationOn(err, "results_matric_course_key") {
			return apperrors.ErrDuplicateResultEntry
		}
		return fmt.Errorf("error creating result: %w", err)
	}
	return nil
}

// CreateBatch inserts all rows of a validated import in one transaction.
// The import is all-or-nothing: any failed row rolls the batch back.
func (r *ResultRepository) CreateBatch(ctx context.Context, results []*models.Result) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin result batch: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, res := range results {
		sql, args, err := r.sb.Insert("results").
			Columns("matric_number", "course_code", "course_title", "department", "level", "score", "grade").
			Values(res.MatricNumber, res.CourseCode, res.CourseTitle, res.Department, res.Level, res.Score, res.Grade).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build batch result query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
			if dberrors.IsUniqueViolationOn(err, "results_matric_course_key") {
				return fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicateResultEntry, res.MatricNumber, res.CourseCode)
			}
			return fmt.Errorf("error inserting result row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit result batch: %w", err)
	}

	logger.Info().Int("count", len(results)).Msg("Result batch committed")
	return nil
}

// ListByMatric returns all results for a student ordered by course code.
func (r *ResultRepository) ListByMatric(ctx context.Context, matric string) ([]*models.Result, error) {
	sql, args, err := r.sb.Select("id, matric_number, course_code, course_title, department, level, score, grade, created_at").
		From("results").
		Where(squirrel.Eq{"matric_number": matric}).
		OrderBy("course_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing results: %w", err)
	}
	defer rows.Close()

	var out []*models.Result
	for rows.Next() {
		var res models.Result
		if err := rows.Scan(&res.ID, &res.MatricNumber, &res.CourseCode, &res.CourseTitle,
			&res.Department, &res.Level, &res.Score, &res.Grade, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning result row: %w", err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

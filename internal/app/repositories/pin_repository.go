package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/dberrors"
	"github.com/nonso/acadport/internal/pkg/logger"
)

// ErrPinCodeCollision signals that a generated batch hit the pin-code
// unique index. The service retries the batch with fresh randomness
// instead of surfacing the raw constraint violation.
var ErrPinCodeCollision = errors.New("pin code collision")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the redeem
// update can run standalone or inside the enrollment transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PinRepository handles single-use course registration pins.
type PinRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPinRepository creates a PinRepository.
func NewPinRepository(db *pgxpool.Pool) *PinRepository {
	return &PinRepository{db: db, sb: pgsb}
}

const pinColumns = "id, code, course_code, course_title, used, created_at, used_at"

func scanPin(row pgx.Row) (*models.CoursePin, error) {
	var p models.CoursePin
	err := row.Scan(&p.ID, &p.Code, &p.CourseCode, &p.CourseTitle, &p.Used, &p.CreatedAt, &p.UsedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateBatch inserts a batch of freshly generated pins atomically. A
// unique-index hit on any code fails the whole batch with
// ErrPinCodeCollision so the caller can regenerate and retry.
func (r *PinRepository) CreateBatch(ctx context.Context, pins []*models.CoursePin) error {
	if len(pins) == 0 {
		return nil
	}

	ins := r.sb.Insert("course_pins").Columns("code", "course_code", "course_title")
	for _, p := range pins {
		ins = ins.Values(p.Code, p.CourseCode, p.CourseTitle)
	}
	sql, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create pins query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolationOn(err, "course_pins_code_key") {
			return ErrPinCodeCollision
		}
		return fmt.Errorf("error creating pins: %w", err)
	}

	logger.Info().Int("count", len(pins)).Str("courseCode", pins[0].CourseCode).Msg("Pin batch created")
	return nil
}

// Redeem atomically flips one pin from unused to used, but only when it
// exists, is bound to the expected course code, and is currently unused.
// The flip is a single conditional UPDATE: two concurrent redemptions of
// the same pin cannot both succeed.
func (r *PinRepository) Redeem(ctx context.Context, pinCode, expectedCourseCode string) error {
	return redeemPin(ctx, r.db, pinCode, expectedCourseCode)
}

// redeemPin runs the conditional flip on any querier (pool or open tx).
// The mismatch outcomes are not-applicable results, reported as distinct
// sentinels for the caller to translate.
func redeemPin(ctx context.Context, q querier, pinCode, expectedCourseCode string) error {
	tag, err := q.Exec(ctx,
		`UPDATE course_pins SET used = TRUE, used_at = NOW()
		 WHERE code = $1 AND UPPER(course_code) = UPPER($2) AND used = FALSE`,
		pinCode, expectedCourseCode)
	if err != nil {
		return fmt.Errorf("error redeeming pin: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// The conditional update matched nothing; classify why.
	var courseCode string
	var used bool
	err = q.QueryRow(ctx,
		`SELECT course_code, used FROM course_pins WHERE code = $1`, pinCode).
		Scan(&courseCode, &used)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrPinNotFound
	case err != nil:
		return fmt.Errorf("error classifying pin redemption: %w", err)
	case used:
		return apperrors.ErrPinAlreadyUsed
	default:
		return apperrors.ErrPinCourseMismatch
	}
}

// List returns pins, optionally filtered to one course code.
func (r *PinRepository) List(ctx context.Context, courseCode string) ([]*models.CoursePin, error) {
	q := r.sb.Select(pinColumns).From("course_pins").OrderBy("created_at DESC")
	if courseCode != "" {
		q = q.Where("UPPER(course_code) = UPPER(?)", courseCode)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list pins query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing pins: %w", err)
	}
	defer rows.Close()

	var out []*models.CoursePin
	for rows.Next() {
		p, err := scanPin(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pin row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes one pin. Completed registrations keep the pin code as a
// historical string, so nothing cascades.
func (r *PinRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("course_pins").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete pin query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting pin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPinNotFound
	}
	return nil
}

// DeleteAll unconditionally clears the ledger.
func (r *PinRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM course_pins`)
	if err != nil {
		return 0, fmt.Errorf("error deleting pins: %w", err)
	}
	return tag.RowsAffected(), nil
}

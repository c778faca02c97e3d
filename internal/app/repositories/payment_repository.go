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

// PaymentRepository handles the append-only payment ledger. Rows are
// inserted once and never mutated.
type PaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a PaymentRepository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db, sb: pgsb}
}

// Create appends one ledger entry. A duplicate caller-supplied reference
// is a conflict, which makes retried submissions idempotent.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	sql, args, err := r.sb.Insert("payments").
		Columns("reference", "email", "purpose", "amount_kobo").
		Values(p.Reference, p.Email, p.Purpose, p.AmountNGN).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create payment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		if dberrors.IsUniqueViolationOn(err, "payments_reference_key") {
			return apperrors.ErrPaymentRefExists
		}
		return fmt.Errorf("error creating payment: %w", err)
	}

	logger.Info().Str("reference", p.Reference).Str("email", p.Email).Msg("Payment recorded")
	return nil
}

// ListByEmail returns all payments recorded for one student email.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select("id, reference, email, purpose, amount_kobo, created_at").
		From("payments").
		Where(squirrel.Eq{"email": email}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Reference, &p.Email, &p.Purpose, &p.AmountNGN, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

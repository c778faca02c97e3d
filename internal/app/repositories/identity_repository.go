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
	"github.com/nonso/acadport/internal/pkg/logger"
)

// IdentityRepository handles student identity rows. Emails and phones are
// stored in normalized form; unique indexes on both close the race window
// that the pre-insert existence check leaves open.
type IdentityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewIdentityRepository creates an IdentityRepository.
func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{db: db, sb: pgsb}
}

const identityColumns = "id, email, phone, password_hash, surname, first_name, middle_name, passport_url, created_at"

func scanIdentity(row pgx.Row) (*models.StudentIdentity, error) {
	var ident models.StudentIdentity
	err := row.Scan(&ident.ID, &ident.Email, &ident.Phone, &ident.PasswordHash,
		&ident.Surname, &ident.FirstName, &ident.MiddleName, &ident.PassportURL, &ident.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

// Create inserts a new identity. Unique violations come back as the
// corresponding conflict sentinel, not a raw pg error.
func (r *IdentityRepository) Create(ctx context.Context, ident *models.StudentIdentity) error {
	sql, args, err := r.sb.Insert("student_identities").
		Columns("email", "phone", "password_hash", "surname", "first_name", "middle_name", "passport_url").
		Values(ident.Email, ident.Phone, ident.PasswordHash, ident.Surname, ident.FirstName, ident.MiddleName, ident.PassportURL).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create identity query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&ident.ID, &ident.CreatedAt)
	if err != nil {
		switch {
		case dberrors.IsUniqueViolationOn(err, "student_identities_email_key"):
			logger.Warn().Str("email", ident.Email).Msg("Duplicate email on registration")
			return apperrors.ErrEmailExists
		case dberrors.IsUniqueViolationOn(err, "student_identities_phone_key"):
			logger.Warn().Str("phone", ident.Phone).Msg("Duplicate phone on registration")
			return apperrors.ErrPhoneExists
		}
		return fmt.Errorf("error creating identity: %w", err)
	}

	logger.Info().Str("email", ident.Email).Int64("id", ident.ID).Msg("Identity created")
	return nil
}

// GetByEmail retrieves one identity by normalized email.
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*models.StudentIdentity, error) {
	sql, args, err := r.sb.Select(identityColumns).
		From("student_identities").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get identity query: %w", err)
	}

	ident, err := scanIdentity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving identity: %w", err)
	}
	return ident, nil
}

// EmailOrPhoneExists is the duplicate-guard existence check: true when any
// identity matches either normalized value. Exact equality only.
func (r *IdentityRepository) EmailOrPhoneExists(ctx context.Context, email, phone string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("student_identities").
		Where(squirrel.Or{squirrel.Eq{"email": email}, squirrel.Eq{"phone": phone}}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build existence query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking identity existence: %w", err)
	}
	return exists, nil
}

// List returns all identities ordered by creation time.
func (r *IdentityRepository) List(ctx context.Context) ([]*models.StudentIdentity, error) {
	sql, args, err := r.sb.Select(identityColumns).
		From("student_identities").
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list identities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing identities: %w", err)
	}
	defer rows.Close()

	var out []*models.StudentIdentity
	for rows.Next() {
		ident, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning identity row: %w", err)
		}
		out = append(out, ident)
	}
	return out, rows.Err()
}

// UpdatePassport replaces the stored passport reference for an email.
func (r *IdentityRepository) UpdatePassport(ctx context.Context, email, passportURL string) error {
	sql, args, err := r.sb.Update("student_identities").
		Set("passport_url", passportURL).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update passport query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating passport: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

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

// ProfileRepository handles extended student profiles. Profiles are keyed
// by normalized email with no foreign key to identities: either side may
// exist without the other.
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a ProfileRepository.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db, sb: pgsb}
}

const profileColumns = "id, email, surname, first_name, middle_name, phone, department, level, " +
	"reg_number, matric_number, next_of_kin, next_of_kin_phone, address, updated_at"

func scanProfile(row pgx.Row) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := row.Scan(&p.ID, &p.Email, &p.Surname, &p.FirstName, &p.MiddleName, &p.Phone,
		&p.Department, &p.Level, &p.RegNumber, &p.MatricNumber,
		&p.NextOfKin, &p.NextOfKinPhone, &p.Address, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates the profile for an email or updates the existing one.
// Empty incoming fields keep their stored value (COALESCE/NULLIF dance),
// so repeated partial upserts converge instead of erasing each other.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("email", "surname", "first_name", "middle_name", "phone", "department", "level",
			"reg_number", "matric_number", "next_of_kin", "next_of_kin_phone", "address").
		Values(p.Email, p.Surname, p.FirstName, p.MiddleName, p.Phone, p.Department, p.Level,
			p.RegNumber, p.MatricNumber, p.NextOfKin, p.NextOfKinPhone, p.Address).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			surname = COALESCE(NULLIF(EXCLUDED.surname, ''), student_profiles.surname),
			first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), student_profiles.first_name),
			middle_name = COALESCE(NULLIF(EXCLUDED.middle_name, ''), student_profiles.middle_name),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), student_profiles.phone),
			department = COALESCE(NULLIF(EXCLUDED.department, ''), student_profiles.department),
			level = COALESCE(NULLIF(EXCLUDED.level, ''), student_profiles.level),
			reg_number = COALESCE(NULLIF(EXCLUDED.reg_number, ''), student_profiles.reg_number),
			matric_number = COALESCE(NULLIF(EXCLUDED.matric_number, ''), student_profiles.matric_number),
			next_of_kin = COALESCE(NULLIF(EXCLUDED.next_of_kin, ''), student_profiles.next_of_kin),
			next_of_kin_phone = COALESCE(NULLIF(EXCLUDED.next_of_kin_phone, ''), student_profiles.next_of_kin_phone),
			address = COALESCE(NULLIF(EXCLUDED.address, ''), student_profiles.address),
			updated_at = NOW()
		RETURNING ` + profileColumns).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert profile query: %w", err)
	}

	updated, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch {
		case dberrors.IsUniqueViolationOn(err, "student_profiles_reg_number_key"):
			return apperrors.ErrRegNumberExists
		case dberrors.IsUniqueViolationOn(err, "student_profiles_matric_number_key"):
			return apperrors.ErrMatricNumberExists
		}
		return fmt.Errorf("error upserting profile: %w", err)
	}

	*p = *updated
	logger.Info().Str("email", p.Email).Msg("Profile upserted")
	return nil
}

// GetByEmail retrieves one profile by normalized email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("student_profiles").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return p, nil
}

// GetByMatric retrieves one profile by matriculation number.
func (r *ProfileRepository) GetByMatric(ctx context.Context, matric string) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("student_profiles").
		Where(squirrel.Eq{"matric_number": matric}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile by matric query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return p, nil
}

// List returns all profiles. Composite listing merges these with
// identities by email in memory, so one pass here is enough.
func (r *ProfileRepository) List(ctx context.Context) ([]*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("student_profiles").
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	var out []*models.StudentProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

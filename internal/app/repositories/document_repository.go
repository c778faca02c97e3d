package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/pkg/logger"
)

// DocumentRepository handles per-student document bundles. One bundle per
// identity id, written upsert-on-conflict.
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a DocumentRepository.
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db, sb: pgsb}
}

const documentColumns = "id, identity_id, birth_certificate_url, olevel_result_url, jamb_result_url, " +
	"olevel_exam_type, olevel_exam_number, olevel_exam_year, jamb_reg_number, jamb_score, updated_at"

func scanDocuments(row pgx.Row) (*models.DocumentBundle, error) {
	var d models.DocumentBundle
	err := row.Scan(&d.ID, &d.IdentityID, &d.BirthCertificateURL, &d.OLevelResultURL, &d.JAMBResultURL,
		&d.OLevelExamType, &d.OLevelExamNumber, &d.OLevelExamYear, &d.JAMBRegNumber, &d.JAMBScore, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Upsert writes the bundle for an identity, merging over the stored row so
// uploads arriving in separate requests accumulate instead of overwriting.
func (r *DocumentRepository) Upsert(ctx context.Context, d *models.DocumentBundle) error {
	sql, args, err := r.sb.Insert("document_bundles").
		Columns("identity_id", "birth_certificate_url", "olevel_result_url", "jamb_result_url",
			"olevel_exam_type", "olevel_exam_number", "olevel_exam_year", "jamb_reg_number", "jamb_score").
		Values(d.IdentityID, d.BirthCertificateURL, d.OLevelResultURL, d.JAMBResultURL,
			d.OLevelExamType, d.OLevelExamNumber, d.OLevelExamYear, d.JAMBRegNumber, d.JAMBScore).
		Suffix(`ON CONFLICT (identity_id) DO UPDATE SET
			birth_certificate_url = COALESCE(NULLIF(EXCLUDED.birth_certificate_url, ''), document_bundles.birth_certificate_url),
			olevel_result_url = COALESCE(NULLIF(EXCLUDED.olevel_result_url, ''), document_bundles.olevel_result_url),
			jamb_result_url = COALESCE(NULLIF(EXCLUDED.jamb_result_url, ''), document_bundles.jamb_result_url),
			olevel_exam_type = COALESCE(NULLIF(EXCLUDED.olevel_exam_type, ''), document_bundles.olevel_exam_type),
			olevel_exam_number = COALESCE(NULLIF(EXCLUDED.olevel_exam_number, ''), document_bundles.olevel_exam_number),
			olevel_exam_year = COALESCE(NULLIF(EXCLUDED.olevel_exam_year, ''), document_bundles.olevel_exam_year),
			jamb_reg_number = COALESCE(NULLIF(EXCLUDED.jamb_reg_number, ''), document_bundles.jamb_reg_number),
			jamb_score = CASE WHEN EXCLUDED.jamb_score > 0 THEN EXCLUDED.jamb_score ELSE document_bundles.jamb_score END,
			updated_at = NOW()
		RETURNING ` + documentColumns).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert documents query: %w", err)
	}

	updated, err := scanDocuments(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return fmt.Errorf("error upserting documents: %w", err)
	}

	*d = *updated
	logger.Info().Int64("identityId", d.IdentityID).Msg("Document bundle upserted")
	return nil
}

// GetByIdentityID retrieves the bundle for one identity, or nil when the
// student has not uploaded anything yet.
func (r *DocumentRepository) GetByIdentityID(ctx context.Context, identityID int64) (*models.DocumentBundle, error) {
	sql, args, err := r.sb.Select(documentColumns).
		From("document_bundles").
		Where(squirrel.Eq{"identity_id": identityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get documents query: %w", err)
	}

	d, err := scanDocuments(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving documents: %w", err)
	}
	return d, nil
}

// MapByIdentityIDs returns bundles keyed by identity id for a listing pass.
func (r *DocumentRepository) MapByIdentityIDs(ctx context.Context, identityIDs []int64) (map[int64]*models.DocumentBundle, error) {
	if len(identityIDs) == 0 {
		return map[int64]*models.DocumentBundle{}, nil
	}

	sql, args, err := r.sb.Select(documentColumns).
		From("document_bundles").
		Where(squirrel.Eq{"identity_id": identityIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build map documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]*models.DocumentBundle, len(identityIDs))
	for rows.Next() {
		d, err := scanDocuments(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning documents row: %w", err)
		}
		out[d.IdentityID] = d
	}
	return out, rows.Err()
}

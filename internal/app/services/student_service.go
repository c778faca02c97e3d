package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/auth"
	"github.com/nonso/acadport/internal/pkg/filestorage"
	"github.com/nonso/acadport/internal/pkg/helpers"
	"github.com/nonso/acadport/internal/pkg/logger"
	"github.com/nonso/acadport/internal/pkg/normalize"
)

// Upload folders at the object-storage collaborator.
const (
	folderPassports = "passports"
	folderDocuments = "documents"
)

// StudentService owns registration, profile and document upserts, and the
// composite read side (merge, search, listing).
type StudentService struct {
	identities IdentityStore
	profiles   ProfileStore
	documents  DocumentStore
	storage    filestorage.Storage
}

// NewStudentService wires the student workflows.
func NewStudentService(identities IdentityStore, profiles ProfileStore, documents DocumentStore, storage filestorage.Storage) *StudentService {
	return &StudentService{
		identities: identities,
		profiles:   profiles,
		documents:  documents,
		storage:    storage,
	}
}

// RegisterInput carries the registration form plus the raw passport file.
type RegisterInput struct {
	Email            string
	Phone            string
	Password         string
	Surname          string
	FirstName        string
	MiddleName       string
	Passport         []byte
	PassportFilename string
}

// Register creates a new student identity. The duplicate guard runs before
// any write; the storage layer's unique indexes re-check at insert time,
// closing the race between check and insert.
func (s *StudentService) Register(ctx context.Context, in RegisterInput) (*models.Composite, error) {
	if !normalize.ValidEmail(in.Email) {
		return nil, apperrors.NewValidation("email", "a valid email address is required")
	}
	if !normalize.ValidPhone(in.Phone) {
		return nil, apperrors.NewValidation("phone", "phone number must be exactly 11 digits")
	}
	if len(in.Password) < 8 {
		return nil, apperrors.NewValidation("password", "password must be at least 8 characters")
	}
	if strings.TrimSpace(in.Surname) == "" {
		return nil, apperrors.NewValidation("surname", "surname is required")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, apperrors.NewValidation("firstName", "first name is required")
	}
	if len(in.Passport) == 0 {
		return nil, apperrors.NewValidation("passport", "passport image is required")
	}

	email := normalize.Email(in.Email)
	phone := normalize.Phone(in.Phone)

	taken, err := s.identities.EmailOrPhoneExists(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if taken {
		return nil, apperrors.New(apperrors.ErrConflict, "email or phone number already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The passport is a required asset at registration time; a storage
	// failure fails the whole request.
	passportURL, err := s.storage.Store(ctx, in.Passport, folderPassports, in.PassportFilename)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Passport upload failed")
		return nil, apperrors.New(apperrors.ErrFileNotAvailable, "passport image could not be stored")
	}

	ident := &models.StudentIdentity{
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Surname:      strings.TrimSpace(in.Surname),
		FirstName:    strings.TrimSpace(in.FirstName),
		MiddleName:   strings.TrimSpace(in.MiddleName),
		PassportURL:  passportURL,
	}
	if err := s.identities.Create(ctx, ident); err != nil {
		// The passport was stored before the insert; don't leave it
		// orphaned when the unique indexes reject the identity.
		if rmErr := s.storage.Remove(ctx, passportURL); rmErr != nil {
			logger.Warn().Err(rmErr).Str("url", passportURL).Msg("Failed to remove passport after registration failure")
		}
		return nil, err
	}

	// A profile may have been upserted before registration; merge it in.
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	composite := models.Merge(ident, profile, nil)
	return &composite, nil
}

// UpsertProfile creates or updates the extended profile for an email. The
// identity may not exist yet; that is not an error.
func (s *StudentService) UpsertProfile(ctx context.Context, email string, req dto.ProfileUpsertRequest) (*models.Composite, error) {
	if !normalize.ValidEmail(email) {
		return nil, apperrors.NewValidation("email", "a valid email address is required")
	}
	if req.Phone != "" && !normalize.ValidPhone(req.Phone) {
		return nil, apperrors.NewValidation("phone", "phone number must be exactly 11 digits")
	}

	profile := &models.StudentProfile{
		Email:          normalize.Email(email),
		Surname:        strings.TrimSpace(req.Surname),
		FirstName:      strings.TrimSpace(req.FirstName),
		MiddleName:     strings.TrimSpace(req.MiddleName),
		Phone:          normalize.Phone(req.Phone),
		Department:     strings.TrimSpace(req.Department),
		Level:          strings.TrimSpace(req.Level),
		RegNumber:      normalize.RegNumber(req.RegNumber),
		MatricNumber:   normalize.RegNumber(req.MatricNumber),
		NextOfKin:      strings.TrimSpace(req.NextOfKin),
		NextOfKinPhone: normalize.Phone(req.NextOfKinPhone),
		Address:        strings.TrimSpace(req.Address),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return s.composite(ctx, profile.Email)
}

// DocumentInput carries the document-bundle form plus any uploaded files.
type DocumentInput struct {
	OLevelExamType   string
	OLevelExamNumber string
	OLevelExamYear   string
	JAMBRegNumber    string
	JAMBScore        int
	BirthCertificate []byte
	BirthCertName    string
	OLevelResult     []byte
	OLevelResultName string
	JAMBResult       []byte
	JAMBResultName   string
}

// UpsertDocuments stores any uploaded files and upserts the student's
// bundle. Unlike profiles, bundles are keyed by identity id, so the
// identity must exist.
func (s *StudentService) UpsertDocuments(ctx context.Context, email string, in DocumentInput) (*models.DocumentBundle, error) {
	ident, err := s.identities.GetByEmail(ctx, normalize.Email(email))
	if err != nil {
		return nil, err
	}

	bundle := &models.DocumentBundle{
		IdentityID:       ident.ID,
		OLevelExamType:   strings.TrimSpace(in.OLevelExamType),
		OLevelExamNumber: strings.TrimSpace(in.OLevelExamNumber),
		OLevelExamYear:   strings.TrimSpace(in.OLevelExamYear),
		JAMBRegNumber:    strings.TrimSpace(in.JAMBRegNumber),
		JAMBScore:        in.JAMBScore,
	}

	uploads := []struct {
		content []byte
		name    string
		dest    *string
	}{
		{in.BirthCertificate, in.BirthCertName, &bundle.BirthCertificateURL},
		{in.OLevelResult, in.OLevelResultName, &bundle.OLevelResultURL},
		{in.JAMBResult, in.JAMBResultName, &bundle.JAMBResultURL},
	}
	for _, u := range uploads {
		if len(u.content) == 0 {
			continue
		}
		url, err := s.storage.Store(ctx, u.content, folderDocuments, u.name)
		if err != nil {
			logger.Error().Err(err).Str("email", email).Str("file", u.name).Msg("Document upload failed")
			return nil, apperrors.New(apperrors.ErrFileNotAvailable, "uploaded document could not be stored")
		}
		*u.dest = url
	}

	if err := s.documents.Upsert(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Get returns the composite view for one email. Identity-only and
// profile-only students both resolve; only a total miss is not-found.
func (s *StudentService) Get(ctx context.Context, email string) (*models.Composite, error) {
	if !normalize.ValidEmail(email) {
		return nil, apperrors.NewValidation("email", "a valid email address is required")
	}
	return s.composite(ctx, normalize.Email(email))
}

func (s *StudentService) composite(ctx context.Context, email string) (*models.Composite, error) {
	ident, err := s.identities.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	if ident == nil && profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	var docs *models.DocumentBundle
	if ident != nil {
		if docs, err = s.documents.GetByIdentityID(ctx, ident.ID); err != nil {
			return nil, err
		}
	}

	composite := models.Merge(ident, profile, docs)
	return &composite, nil
}

// Search returns the full filtered composite set, unpaged. The free-text
// query substring-matches full name, matric number, email, and phone
// case-insensitively; department and level filter exactly after
// trim+lowercase on both sides. Merging happens per student at read time
// with O(1) profile lookups by email.
func (s *StudentService) Search(ctx context.Context, q dto.StudentListQuery) ([]models.Composite, error) {
	identities, err := s.identities.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	profilesByEmail := make(map[string]*models.StudentProfile, len(profiles))
	for _, p := range profiles {
		profilesByEmail[normalize.Email(p.Email)] = p
	}

	identityIDs := make([]int64, 0, len(identities))
	for _, ident := range identities {
		identityIDs = append(identityIDs, ident.ID)
	}
	docsByIdentity, err := s.documents.MapByIdentityIDs(ctx, identityIDs)
	if err != nil {
		return nil, err
	}

	composites := make([]models.Composite, 0, len(identities)+len(profiles))
	seen := make(map[string]bool, len(identities))
	for _, ident := range identities {
		email := normalize.Email(ident.Email)
		composites = append(composites, models.Merge(ident, profilesByEmail[email], docsByIdentity[ident.ID]))
		seen[email] = true
	}
	// Profiles upserted before registration surface as profile-only rows.
	for _, p := range profiles {
		if email := normalize.Email(p.Email); !seen[email] {
			composites = append(composites, models.Merge(nil, p, nil))
		}
	}

	filtered := composites[:0]
	query := normalize.Fold(q.Query)
	dept := normalize.Fold(q.Department)
	level := normalize.Fold(q.Level)
	for _, c := range composites {
		if dept != "" && normalize.Fold(c.Department) != dept {
			continue
		}
		if level != "" && normalize.Fold(c.Level) != level {
			continue
		}
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Email < filtered[j].Email })
	return filtered, nil
}

// List pages through the filtered set. Pagination applies after filtering:
// the full-name match is on a derived field, so the filter cannot be
// pushed down to the storage layer.
func (s *StudentService) List(ctx context.Context, q dto.StudentListQuery, page, size int) ([]models.Composite, helpers.Page, error) {
	filtered, err := s.Search(ctx, q)
	if err != nil {
		return nil, helpers.Page{}, err
	}

	start, end := helpers.SliceBounds(page, size, len(filtered))
	return filtered[start:end], helpers.NewPage(int64(len(filtered)), page, size), nil
}

func matchesQuery(c models.Composite, foldedQuery string) bool {
	for _, hay := range []string{c.FullName, c.MatricNumber, c.Email, c.Phone} {
		if hay != "" && strings.Contains(strings.ToLower(hay), foldedQuery) {
			return true
		}
	}
	return false
}

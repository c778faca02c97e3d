package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/auth"
	"github.com/nonso/acadport/internal/pkg/logger"
	"github.com/nonso/acadport/internal/pkg/normalize"
)

// AuthService authenticates accounts and issues access tokens. The admin
// account comes from configuration; students are looked up by identity.
type AuthService struct {
	identities IdentityStore
	jwt        *auth.JWTService

	adminEmail        string
	adminPasswordHash string

	// decoyHash is compared against on lookup misses so that an unknown
	// email costs the same as a wrong password.
	decoyHash string
}

// NewAuthService wires authentication. adminPasswordHash must already be a
// bcrypt hash; plaintext credentials never live in process state.
func NewAuthService(identities IdentityStore, jwt *auth.JWTService, adminEmail, adminPasswordHash string) *AuthService {
	decoyHash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to derive decoy password hash")
	}
	return &AuthService{
		identities:        identities,
		jwt:               jwt,
		adminEmail:        normalize.Email(adminEmail),
		adminPasswordHash: adminPasswordHash,
		decoyHash:         decoyHash,
	}
}

// Login verifies credentials and returns a signed token. Lookup misses and
// bad passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalize.Email(req.Email)

	if s.adminEmail != "" && email == s.adminEmail {
		if !auth.CheckPassword(s.adminPasswordHash, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return s.issue(email, auth.RoleAdmin)
	}

	ident, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		// Burn a comparison so the miss takes as long as a bad password.
		auth.CheckPassword(s.decoyHash, req.Password)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(ident.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issue(email, auth.RoleStudent)
}

func (s *AuthService) issue(email, role string) (*dto.LoginResponse, error) {
	token, expiresIn, err := s.jwt.GenerateToken(email, role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: expiresIn, Role: role}, nil
}

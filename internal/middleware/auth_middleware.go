package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextEmail = "authEmail"
	ContextRole  = "authRole"
)

// AuthMiddleware validates access tokens and enforces role checks.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth rejects requests without a valid bearer token and stores the
// caller's email and role on the context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows only callers whose token carries one of the given
// roles. Must run after JWTAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Insufficient permissions")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}

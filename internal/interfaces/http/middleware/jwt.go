package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserCodeKey = "jwt_user_code"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// RequireAuth returns a middleware that rejects requests without a valid
// access token
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		storeClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth returns a middleware that attaches claims when a valid token
// is present but lets anonymous requests through. A token that is present
// but invalid is still rejected.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AuthHeaderKey) == "" {
			c.Next()
			return
		}

		claims, err := claimsFromRequest(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		storeClaims(c, claims)
		c.Next()
	}
}

func claimsFromRequest(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return nil, errors.New("missing authorization header")
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, errors.New("invalid authorization header format")
	}

	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return nil, errors.New("missing token")
	}
	return jwtService.ValidateToken(tokenString)
}

func storeClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserCodeKey, claims.UserCode)
	c.Set(JWTRoleKey, claims.Role)
}

func abortUnauthorized(c *gin.Context, err error) {
	message := "Authentication required"
	if errors.Is(err, auth.ErrExpiredToken) {
		message = "Token has expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, c.GetString(RequestIDKey)))
}

// GetUserCode returns the authenticated user's code, or "" for anonymous
// requests
func GetUserCode(c *gin.Context) string {
	return c.GetString(JWTUserCodeKey)
}

// GetClaims returns the JWT claims stored by the auth middleware
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(JWTClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// IsAdmin reports whether the request carries admin claims
func IsAdmin(c *gin.Context) bool {
	return c.GetString(JWTRoleKey) == "admin"
}

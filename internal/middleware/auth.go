package middleware

import (
	"strings"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/jwt"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	ContextKeyClaims = "auth_claims"

	// CookieName is the HTTP-only cookie carrying the session token. The
	// Authorization header takes precedence when both are present.
	CookieName = "token"
)

// Auth returns a middleware that enforces JWT authentication.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth sets the claims if a valid token is present, but does not
// block the request. Lets the rate limiter distinguish signed-in traffic.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := jwt.Parse(extractToken(c)); err == nil {
			c.Set(ContextKeyClaims, claims)
		}
		c.Next()
	}
}

// RequireRoles returns a middleware that passes only users carrying at least
// one of the given role tags. Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			response.Unauthorized(c)
			return
		}
		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}
		response.Forbidden(c)
	}
}

// CurrentClaims extracts the authenticated claims from context, or nil.
func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, _ := c.Get(ContextKeyClaims)
	claims, _ := v.(*jwt.Claims)
	return claims
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// IsAuthenticated reports whether the request carries a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentClaims(c) != nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return normalizeToken(auth)
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return normalizeToken(cookie)
	}
	return ""
}

// normalizeToken trims spaces and strips an optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/services"
)

// SessionAuthMiddleware authenticates requests against the opaque session
// token issued at login.
type SessionAuthMiddleware struct {
	auth services.AuthService
}

func NewSessionAuthMiddleware(auth services.AuthService) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{auth: auth}
}

// AuthMiddleware resolves "Authorization: Bearer <token>" to an identity and
// stores it in the request context.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header missing or malformed",
			})
			c.Abort()
			return
		}

		identity, err := sam.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set("identity", identity)
		c.Set("session_token", token)

		c.Next()
	}
}

// RequireRoleMiddleware rejects callers whose role is not in the allowed set.
// Admin passes every check.
func (sam *SessionAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := IdentityFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "User identity not found in context",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if identity.Role == requiredRole || identity.Role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: fmt.Sprintf("Insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// IdentityFromContext extracts the authenticated identity from a Gin context.
func IdentityFromContext(c *gin.Context) (models.Identity, error) {
	value, exists := c.Get("identity")
	if !exists {
		return models.Identity{}, fmt.Errorf("identity not found in context")
	}
	identity, ok := value.(models.Identity)
	if !ok {
		return models.Identity{}, fmt.Errorf("invalid identity type in context")
	}
	return identity, nil
}

// TokenFromContext returns the raw session token of the current request.
func TokenFromContext(c *gin.Context) (string, error) {
	value, exists := c.Get("session_token")
	if !exists {
		return "", fmt.Errorf("session token not found in context")
	}
	token, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid session token type in context")
	}
	return token, nil
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pkfit.com.br/pkfitsystem/internal/entity"
	userRepo "pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	"pkfit.com.br/pkfitsystem/pkg/token"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	tokens   *token.Service
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, tokens *token.Service) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": message})
	c.Abort()
}

// RequireAuth validates the bearer token and attaches the current user to the
// request context. The user is re-fetched on every request so role or tenant
// changes take effect before the token expires.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authentication token not provided")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "malformed authorization header")
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abortUnauthorized(c, "token expired")
			} else {
				abortUnauthorized(c, "invalid token")
			}
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "user not found")
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID.String())
		c.Next()
	}
}

// RequireRoles gates a route group to a permitted role set.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			abortUnauthorized(c, "user not authenticated")
			return
		}

		user, ok := value.(*entity.User)
		if !ok {
			abortUnauthorized(c, "user not authenticated")
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "you do not have permission to access this resource"})
		c.Abort()
	}
}

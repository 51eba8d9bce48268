package middleware

import (
	"strings"

	"waselni_backend/internal/auth"
	"waselni_backend/internal/models"
	"waselni_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware проверяет Bearer-токен и кладет userID и role в контекст
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWith(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			abortWith(c, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles пропускает только перечисленные роли.
// Ставится после AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := contextRole(c)
		if !ok {
			abortWith(c, apperrors.NewForbiddenError("auth", "Access denied: no role"))
			return
		}

		if _, ok := allowed[role]; !ok {
			abortWith(c, apperrors.NewForbiddenError("auth", "Access denied: insufficient role"))
			return
		}

		c.Next()
	}
}

// contextRole достает роль из gin-контекста.
// Роль может лежать и как UserRole, и как обычная строка.
func contextRole(c *gin.Context) (models.UserRole, bool) {
	val, exists := c.Get("role")
	if !exists {
		return "", false
	}

	switch r := val.(type) {
	case models.UserRole:
		return r, true
	case string:
		return models.UserRole(r), true
	}
	return "", false
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	apperrors.HandleError(c, err)
	c.Abort()
}

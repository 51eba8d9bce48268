package auth

import (
	"errors"
	"time"

	"waselni_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims - полезная нагрузка access/refresh токена
type Claims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	Type   string `json:"typ"` // "access" или "refresh"
	jwt.RegisteredClaims
}

// GenerateToken выпускает access токен для пользователя
func GenerateToken(userID, role string) (string, error) {
	cfg := config.GetConfig()
	return generate(userID, role, "access", time.Duration(cfg.JWT.TTL)*time.Minute)
}

// GenerateRefreshToken выпускает refresh токен
func GenerateRefreshToken(userID, role string) (string, error) {
	cfg := config.GetConfig()
	return generate(userID, role, "refresh", time.Duration(cfg.JWT.RefreshTTL)*time.Minute)
}

func generate(userID, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// Уникальный jti: два токена одного пользователя различаются
			// даже при выпуске в одну и ту же секунду
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GetConfig().JWT.Secret))
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(config.GetConfig().JWT.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ParseRefreshToken проверяет, что токен является refresh токеном
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	claims, err := ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package lib

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusmatch/Backend-Study-Match/src/models"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTManager issues and verifies HS256 tokens for authenticated users.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Generate returns a signed token carrying the user id, email and role.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.Id.Hex(),
		"email":  user.Email,
		"role":   string(user.Role),
		"exp":    time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(m.secret)
}

// Verify decodes a token and returns its claims.
func (m *JWTManager) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

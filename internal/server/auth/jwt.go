// Package auth issues and checks the HS256 tokens that guard the registry
// administration endpoints.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// Claims: стандартные утверждения плюс имя оператора и его роль.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateAdminToken signs an admin token for subject valid for validity.
func GenerateAdminToken(subject string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Role: RoleAdmin,
	})

	return token.SignedString(secretKey)
}

// ParseAdminToken returns the subject of a valid admin token. Any failure,
// including a non-admin role or an expired token, maps to
// common.ErrorInvalidToken.
func ParseAdminToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token expired", common.ErrorInvalidToken)
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInvalidToken, err)
	}

	if !token.Valid || claims.Role != RoleAdmin {
		return "", common.ErrorInvalidToken
	}

	return claims.Subject, nil
}

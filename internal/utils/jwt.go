package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer = "clickpay"
	roleAdmin   = "admin"
)

var ErrNotAdmin = errors.New("token does not carry the admin role")

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed admin JWT for adminID.
func GenerateToken(secret string, adminID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &adminClaims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   adminID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates an admin token and returns the admin ID in its subject.
func ParseToken(secret, tokenString string) (uuid.UUID, error) {
	var claims adminClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.Role != roleAdmin {
		return uuid.Nil, ErrNotAdmin
	}

	return uuid.Parse(claims.Subject)
}

// Package service contains the business logic for the feedback service.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT token claims.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService defines JWT token operations. Tokens are stateless: validation
// is a signature and expiry check only.
type JWTService interface {
	GenerateToken(userID int64, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetExpiry() time.Duration
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWTService instance. Returns nil if the secret
// is shorter than 32 bytes.
func NewJWTService(secret string, expiry time.Duration) JWTService {
	if len(secret) < 32 {
		return nil
	}
	return &jwtService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *jwtService) GenerateToken(userID int64, email string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func (s *jwtService) GetExpiry() time.Duration {
	return s.expiry
}

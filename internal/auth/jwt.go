package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims for a console operator session
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Auth handles token issue and verification
type Auth struct {
	jwtSecret []byte
	accessTTL time.Duration
}

// NewAuth creates a new Auth instance
func NewAuth(jwtSecret string, accessTTL time.Duration) *Auth {
	return &Auth{
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

// GenerateAccessToken generates a short-lived JWT access token
func (a *Auth) GenerateAccessToken(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "rosactl",
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates and parses a JWT access token
func (a *Auth) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GetAccessTTL returns the access token TTL
func (a *Auth) GetAccessTTL() time.Duration {
	return a.accessTTL
}

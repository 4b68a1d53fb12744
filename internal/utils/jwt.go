package utils

import (
	"errors" // Sentinel errors
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Token verification errors
var (
	ErrTokenExpired = errors.New("token expired") // Past its expiry claim
	ErrTokenInvalid = errors.New("invalid token") // Malformed or bad signature
)

// JWT Claims
type Claims struct {
	UserID               string `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims        // Standard JWT claims
}

// TokenIssuer mints and validates bearer tokens. The secret and TTL are fixed
// at construction; there is no server-side revocation, only expiry.
type TokenIssuer struct {
	secret []byte        // Process-wide signing key
	ttl    time.Duration // Token lifetime
}

// NewTokenIssuer creates a TokenIssuer with the given signing key and lifetime
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token carrying the user ID as its subject
func (i *TokenIssuer) Issue(userID string) (string, error) {
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)), // Absolute expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(i.secret)                        // Sign the token with the secret
}

// Verify parses the token and returns the subject user ID
func (i *TokenIssuer) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return i.secret, nil // Return the secret key for validation
	})
	if err != nil {
		// Distinguish expiry so callers can report it precisely
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims.UserID, nil // Return subject if valid
	}
	return "", ErrTokenInvalid
}

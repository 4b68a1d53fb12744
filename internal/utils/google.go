package utils

import (
	"context" // Context for the verification call
	"errors"  // Sentinel errors

	"google.golang.org/api/idtoken" // Google ID token validation
)

// ErrGoogleToken is returned when a Google ID token fails verification
var ErrGoogleToken = errors.New("invalid google id token")

// GoogleClaims are the identity fields consumed from a verified ID token
type GoogleClaims struct {
	Email string // Verified email address
	Name  string // Display name, may be empty
}

// GoogleVerifier validates a Google ID token and extracts identity claims.
// A func type so tests can substitute a fixed-claims verifier.
type GoogleVerifier func(ctx context.Context, idToken string) (*GoogleClaims, error)

// NewGoogleVerifier returns a verifier bound to the given OAuth client ID
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return func(ctx context.Context, tok string) (*GoogleClaims, error) {
		payload, err := idtoken.Validate(ctx, tok, clientID) // Checks signature, expiry and audience
		if err != nil {
			return nil, ErrGoogleToken
		}
		claims := &GoogleClaims{}
		if v, ok := payload.Claims["email"].(string); ok {
			claims.Email = v
		}
		if v, ok := payload.Claims["name"].(string); ok {
			claims.Name = v
		}
		if claims.Email == "" {
			return nil, ErrGoogleToken // No usable identity without an email
		}
		return claims, nil
	}
}

package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeIdentityToken extracts name, email and picture claims from a
// third-party identity token WITHOUT verifying its signature. The claims
// are whatever the client handed us; this is a trust boundary the
// product accepts for its device-local model, flagged here so nobody
// mistakes it for verified identity.
func DecodeIdentityToken(raw string) (Profile, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrIdentityDecode, err)
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	picture, _ := claims["picture"].(string)
	if email == "" {
		return Profile{}, fmt.Errorf("%w: no email claim", ErrIdentityDecode)
	}

	return Profile{Name: name, Email: email, Picture: picture}, nil
}

package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid bearer token")

type jwtClaims struct {
	Metadata Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

// Verify parses and validates an HMAC-signed bearer token from the
// identity provider and extracts the caller claim.
func Verify(tokenString, secret string) (*Claim, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || claims.Metadata.UserID == "" {
		return nil, ErrInvalidToken
	}

	claim := &Claim{
		Iss:      claims.Issuer,
		Metadata: claims.Metadata,
	}
	if len(claims.Audience) > 0 {
		claim.Aud = claims.Audience[0]
	}
	if claims.ExpiresAt != nil {
		claim.Exp = claims.ExpiresAt.String()
	}
	return claim, nil
}

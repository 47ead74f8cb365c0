package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"monipaep/internal/domain"
)

// ErrInvalidToken is returned for tokens that cannot be parsed or fail verification.
var ErrInvalidToken = errors.New("invalid access token")

type jwtClaims struct {
	jwt.RegisteredClaims
	Permissions []string `json:"permissions"`
	Roles       []string `json:"roles"`
}

type jwtDecoder struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTDecoder returns a ClaimsDecoder for API access tokens.
// With an empty secret the claims are read without verifying the signature;
// otherwise the token must carry a valid HS256 signature. Expiry is not checked
// here since expired tokens are refreshed by the API client.
func NewJWTDecoder(secret string) domain.ClaimsDecoder {
	return &jwtDecoder{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

func (d *jwtDecoder) Decode(token string) (*domain.Claims, error) {
	var claims jwtClaims
	if len(d.secret) == 0 {
		if _, _, err := d.parser.ParseUnverified(token, &claims); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	} else {
		_, err := d.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
			return d.secret, nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}
	return &domain.Claims{Permissions: claims.Permissions, Roles: claims.Roles}, nil
}

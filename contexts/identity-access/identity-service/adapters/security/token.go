package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"scribe/contexts/identity-access/identity-service/domain/entities"
)

type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService signs access tokens with HS256. Tokens carry the user id as sub
// and the username as a private claim.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

func NewJWTService(secret string) (JWTService, error) {
	if secret == "" {
		return JWTService{}, errors.New("jwt secret is required")
	}
	return JWTService{secret: []byte(secret), now: time.Now}, nil
}

func (s JWTService) Issue(claims entities.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s JWTService) Verify(raw string) (entities.TokenClaims, error) {
	now := s.now
	if now == nil {
		now = time.Now
	}
	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return entities.TokenClaims{}, fmt.Errorf("verify access token: %w", err)
	}

	out := entities.TokenClaims{
		Subject:  claims.Subject,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

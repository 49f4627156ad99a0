package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"jona.app/api-server/internal/model"
)

var ErrTokenExpired = errors.New("access token expired")

// AccessClaims is the provider-issued JWT payload. The metadata bags carry
// whatever the provider stored; only role and full_name are interpreted.
type AccessClaims struct {
	Email        string         `json:"email"`
	UserMetadata model.Metadata `json:"user_metadata"`
	AppMetadata  model.Metadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// ParseAccessToken verifies the provider's HS256 signature and returns the
// session state embedded in the token. Expired tokens still yield their
// claims alongside ErrTokenExpired so the caller can attempt a refresh.
func ParseAccessToken(tokenString, secret string) (*model.Session, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})

	expired := false
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("parsing access token: %w", err)
		}
		expired = true
	}

	session := &model.Session{
		AccessToken: tokenString,
		Principal: model.Principal{
			ID:           claims.Subject,
			Email:        claims.Email,
			UserMetadata: claims.UserMetadata,
			AppMetadata:  claims.AppMetadata,
		},
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	if expired {
		return session, ErrTokenExpired
	}
	return session, nil
}

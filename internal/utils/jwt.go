package utils // helpers for token creation and verification

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT along with its expiry. The token
// embeds the caller's identity and the flattened permission names of
// their role, so the authorization gate never needs a storage
// round-trip. Edits to roles or permissions therefore do not affect
// tokens that are already issued; they stay valid until expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Identity is what the gate reconstructs from a verified token.
type Identity struct {
	UserID      uint64
	Email       string
	Authorities []string
}

// HasAuthority reports whether the identity carries the given
// permission string.
func (id Identity) HasAuthority(authority string) bool {
	for _, a := range id.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// NewAccessToken builds and signs an HS256 JWT. Claims: sub (user id),
// email, authorities (permission names), exp and iat.
func NewAccessToken(secret string, userID uint64, email string, authorities []string, ttlHours int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	if authorities == nil {
		authorities = []string{}
	}
	claims := jwt.MapClaims{
		"sub":         userID,
		"email":       email,
		"authorities": authorities,
		"exp":         exp.Unix(),
		"iat":         now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

var errInvalidToken = errors.New("invalid token")

// ParseAccessToken verifies signature and expiry of a raw token and
// reconstructs the caller identity strictly from the embedded claims.
func ParseAccessToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errInvalidToken
	}

	var id Identity
	sub, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, errInvalidToken
	}
	id.UserID = uint64(sub)
	id.Email, _ = claims["email"].(string)
	if raw, ok := claims["authorities"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				id.Authorities = append(id.Authorities, s)
			}
		}
	}
	return id, nil
}

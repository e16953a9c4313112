package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"casepanel/internal/domain/user"
)

// ErrInvalidToken covers every decode failure: bad signature, malformed
// input, or an expired token. Callers must not distinguish between them.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity payload carried inside a signed session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string    `json:"uid"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     user.Role `json:"role"`
}

// TokenCodec signs and verifies session tokens with a single symmetric key.
// HS256 only; tokens carrying any other algorithm fail verification.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec bound to the server's signing secret
func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret}
}

// Encode mints a signed token for the user, valid for ttl from now
func (c *TokenCodec) Encode(u *user.User, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decode verifies the token's signature and expiry and returns its claims.
// Any failure returns ErrInvalidToken.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package tokenjwt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"care-circle/internal/ports/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

const DefaultTTL = 24 * time.Hour

// Codec firma y verifica tokens HS256.
// Implementa auth.TokenIssuer y auth.AuthVerifier con el mismo secreto,
// que llega por config al arrancar el proceso (no hay estado global).
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

var (
	_ auth.TokenIssuer  = (*Codec)(nil)
	_ auth.AuthVerifier = (*Codec)(nil)
)

// Issue emite un JWT con sub = user id. El rol NO viaja en el token:
// se resuelve desde el store de usuarios en cada request.
func (c *Codec) Issue(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id required")
	}

	now := c.now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

func (c *Codec) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		// solo HMAC; un token firmado con otro método no pasa
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{UserID: strings.TrimSpace(sub)}, nil
}

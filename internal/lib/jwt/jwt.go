package jwt

import (
	"errors"
	"fmt"
	"time"

	"psycenter/internal/lib/apperr"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = apperr.Unauthenticated("Could not validate credentials")
	ErrTokenExpired   = apperr.Unauthenticated("Token has expired")
	ErrMissingSubject = apperr.Unauthenticated("Invalid authentication credentials")
)

// Claims carries the admin username in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and validates HMAC-signed access tokens.
type Manager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, algorithm string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt: empty signing secret")
	}

	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("jwt: unsupported signing algorithm %q", algorithm)
	}

	return &Manager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// NewToken signs a token for subject that expires after the configured TTL.
func (m *Manager) NewToken(subject string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	token := jwt.NewWithClaims(m.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// ParseToken verifies signature and expiry and returns the claims. Every
// failure is an Unauthenticated error.
func (m *Manager) ParseToken(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, apperr.Wrap(apperr.KindUnauthenticated, ErrInvalidToken.Message, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"psycenter/internal/config"
	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/jwt"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/metrics"
)

var ErrInvalidCredentials = apperr.Unauthenticated("Invalid username or password")

const tokenType = "bearer"

type TokenManager interface {
	NewToken(subject string) (string, time.Time, error)
	ParseToken(raw string) (*jwt.Claims, error)
}

// Auth verifies the single administrative identity and issues its tokens.
type Auth struct {
	log      *slog.Logger
	username string
	passHash []byte
	tokens   TokenManager
}

// New prepares the verifier. A plaintext password is hashed once here so
// every check goes through bcrypt.
func New(log *slog.Logger, admin config.AdminConfig, tokens TokenManager) (*Auth, error) {
	const op = "auth.New"

	if admin.Username == "" {
		return nil, fmt.Errorf("%s: admin username is empty", op)
	}

	var hash []byte
	switch {
	case admin.PasswordHash != "":
		hash = []byte(admin.PasswordHash)
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("%s: bad password hash: %w", op, err)
		}
	case admin.Password != "":
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	default:
		return nil, fmt.Errorf("%s: admin password is empty", op)
	}

	return &Auth{
		log:      log,
		username: admin.Username,
		passHash: hash,
		tokens:   tokens,
	}, nil
}

// VerifyCredentials reports whether the pair matches the configured admin.
func (a *Auth) VerifyCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// bcrypt runs even for a wrong username so both failures cost the same.
	passOK := bcrypt.CompareHashAndPassword(a.passHash, []byte(password)) == nil

	return userOK && passOK
}

func (a *Auth) Login(ctx context.Context, username, password string) (models.AccessToken, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	log.Info("attempting to login admin")

	if !a.VerifyCredentials(username, password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		log.Warn("invalid credentials")

		return models.AccessToken{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, exp, err := a.tokens.NewToken(username)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return models.AccessToken{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	log.Info("admin logged in successfully")

	return models.AccessToken{
		Token:     token,
		Type:      tokenType,
		Username:  username,
		ExpiresAt: exp,
	}, nil
}

// Verify validates a raw bearer token and returns its subject.
func (a *Auth) Verify(ctx context.Context, raw string) (string, error) {
	const op = "auth.Verify"

	claims, err := a.tokens.ParseToken(raw)
	if err != nil {
		a.log.Debug("token rejected", slog.String("op", op), sl.Err(err))

		if apperr.KindOf(err) != apperr.KindUnauthenticated {
			err = errors.Join(jwt.ErrInvalidToken, err)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return claims.Subject, nil
}

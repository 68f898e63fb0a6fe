package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"psycenter/internal/config"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/jwt"
)

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) NewToken(subject string) (string, time.Time, error) {
	args := m.Called(subject)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenManager) ParseToken(raw string) (*jwt.Claims, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Claims), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNew_HashesPlaintextPassword(t *testing.T) {
	a, err := New(testLogger(), config.AdminConfig{Username: "admin", Password: "s3cret"}, new(MockTokenManager))
	require.NoError(t, err)

	assert.NotEqual(t, []byte("s3cret"), a.passHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(a.passHash, []byte("s3cret")))
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		admin config.AdminConfig
	}{
		{"no username", config.AdminConfig{Password: "x"}},
		{"no secret", config.AdminConfig{Username: "admin"}},
		{"broken hash", config.AdminConfig{Username: "admin", PasswordHash: "not-bcrypt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testLogger(), tt.admin, new(MockTokenManager))
			assert.Error(t, err)
		})
	}
}

func TestVerifyCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := New(testLogger(), config.AdminConfig{Username: "admin", PasswordHash: string(hash)}, new(MockTokenManager))
	require.NoError(t, err)

	assert.True(t, a.VerifyCredentials("admin", "s3cret"))
	assert.False(t, a.VerifyCredentials("admin", "wrong"))
	assert.False(t, a.VerifyCredentials("Admin", "s3cret"))
	assert.False(t, a.VerifyCredentials("", ""))
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name      string
		username  string
		password  string
		mockSetup func(m *MockTokenManager)
		wantKind  apperr.Kind
		wantErr   bool
	}{
		{
			name:     "success",
			username: "admin",
			password: "s3cret",
			mockSetup: func(m *MockTokenManager) {
				m.On("NewToken", "admin").Return("signed.jwt.token", exp, nil).Once()
			},
		},
		{
			name:      "wrong password",
			username:  "admin",
			password:  "nope",
			mockSetup: func(m *MockTokenManager) {},
			wantErr:   true,
			wantKind:  apperr.KindUnauthenticated,
		},
		{
			name:      "wrong username",
			username:  "root",
			password:  "s3cret",
			mockSetup: func(m *MockTokenManager) {},
			wantErr:   true,
			wantKind:  apperr.KindUnauthenticated,
		},
		{
			name:     "signing failure",
			username: "admin",
			password: "s3cret",
			mockSetup: func(m *MockTokenManager) {
				m.On("NewToken", "admin").Return("", time.Time{}, errors.New("boom")).Once()
			},
			wantErr:  true,
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(MockTokenManager)
			tt.mockSetup(tokens)

			a, err := New(testLogger(), config.AdminConfig{Username: "admin", Password: "s3cret"}, tokens)
			require.NoError(t, err)

			got, err := a.Login(ctx, tt.username, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "signed.jwt.token", got.Token)
				assert.Equal(t, "bearer", got.Type)
				assert.Equal(t, "admin", got.Username)
				assert.Equal(t, exp, got.ExpiresAt)
			}

			tokens.AssertExpectations(t)
		})
	}
}

func TestAuth_Verify_WithRealTokens(t *testing.T) {
	ctx := context.Background()

	manager, err := jwt.NewManager("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	a, err := New(testLogger(), config.AdminConfig{Username: "admin", Password: "s3cret"}, manager)
	require.NoError(t, err)

	access, err := a.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	subject, err := a.Verify(ctx, access.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	_, err = a.Verify(ctx, access.Token+"x")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

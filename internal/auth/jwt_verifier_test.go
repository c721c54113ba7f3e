package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sylo/internal/domain"
)

func newTestVerifier(t *testing.T) (*SupabaseJWTVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	kf := func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }
	return NewKeyfuncVerifier(kf, slog.New(slog.NewTextHandler(io.Discard, nil))), key
}

func signRS256(t *testing.T, key *rsa.PrivateKey, claims SupabaseClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifyToken(t *testing.T) {
	v, key := newTestVerifier(t)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name    string
		token   func() string
		wantSub string
		wantErr bool
	}{
		{
			name: "valid authenticated token",
			token: func() string {
				return signRS256(t, key, SupabaseClaims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future},
					Role:             "authenticated",
				})
			},
			wantSub: "user-1",
		},
		{
			name: "expired",
			token: func() string {
				return signRS256(t, key, SupabaseClaims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: past},
					Role:             "authenticated",
				})
			},
			wantErr: true,
		},
		{
			name: "anonymous role",
			token: func() string {
				return signRS256(t, key, SupabaseClaims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future},
					Role:             "anon",
				})
			},
			wantErr: true,
		},
		{
			name: "missing subject",
			token: func() string {
				return signRS256(t, key, SupabaseClaims{
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
					Role:             "authenticated",
				})
			},
			wantErr: true,
		},
		{
			name: "HS256 rejected",
			token: func() string {
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, SupabaseClaims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future},
					Role:             "authenticated",
				}).SignedString([]byte("secret"))
				require.NoError(t, err)
				return s
			},
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   func() string { return "not.a.jwt" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token())
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, claims.GetUserID())
		})
	}
}

package jwtmw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"calorie_backend/internal/feature/users/domain"
	"calorie_backend/internal/feature/users/domain/entity"
)

// mockUserLookup はテスト用のUserLookupモック実装です。
type mockUserLookup struct {
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserLookup) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// signToken builds a token the way the generator does, for arbitrary secrets
// and lifetimes.
func signToken(t *testing.T, secret string, userID uint, username string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
		"username": username,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// TestVerifier_Verify_Success は有効なヘッダーからユーザー名が解決されることを検証します。
func TestVerifier_Verify_Success(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	lookup := &mockUserLookup{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			if id != 7 {
				t.Errorf("expected lookup of subject 7, got %d", id)
			}
			return &entity.User{ID: 7, Username: "alice"}, nil
		},
	}
	v := NewVerifier(secret, lookup)

	identity, err := v.Verify(context.Background(), "Bearer "+signToken(t, secret, 7, "alice", time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Username != "alice" {
		t.Errorf("expected username %q, got %q", "alice", identity.Username)
	}
}

// TestVerifier_Verify_MalformedHeader はヘッダーが不正な形式でもクラッシュせず検証失敗になることを検証します。
func TestVerifier_Verify_MalformedHeader(t *testing.T) {
	t.Parallel()

	v := NewVerifier("test-secret", &mockUserLookup{})

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"scheme only", "Bearer"},
		{"no scheme", "sometoken"},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := v.Verify(context.Background(), tt.header); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

// TestVerifier_Verify_InvalidToken は改ざん・期限切れ・不正アルゴリズムのトークンが拒否されることを検証します。
func TestVerifier_Verify_InvalidToken(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	lookup := &mockUserLookup{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			return &entity.User{ID: id, Username: "alice"}, nil
		},
	}
	v := NewVerifier(secret, lookup)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", signToken(t, "wrong-secret", 1, "alice", time.Hour)},
		{"expired token", signToken(t, secret, 1, "alice", -time.Hour)},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := v.Verify(context.Background(), "Bearer "+tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

// TestVerifier_Verify_UnknownSubject は署名が有効でもユーザーが存在しなければ拒否されることを検証します。
func TestVerifier_Verify_UnknownSubject(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	v := NewVerifier(secret, &mockUserLookup{}) // lookup always reports not found

	_, err := v.Verify(context.Background(), "Bearer "+signToken(t, secret, 99, "ghost", time.Hour))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for unknown subject, got %v", err)
	}
}

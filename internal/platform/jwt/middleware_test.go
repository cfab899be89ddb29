package jwtmw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"calorie_backend/internal/feature/users/domain/entity"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testVerifier() *Verifier {
	lookup := &mockUserLookup{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			return &entity.User{ID: id, Username: "alice"}, nil
		},
	}
	return NewVerifier("test-secret", lookup)
}

// TestAuthRequired_MissingHeader はAuthorizationヘッダーがない場合に401が返されることを検証します。
func TestAuthRequired_MissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler := AuthRequired(testVerifier())
	handler(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if !c.IsAborted() {
		t.Error("expected request to be aborted")
	}
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で401が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"malformed token", "Bearer not.a.valid.token"},
		{"scheme only", "Bearer"},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"wrong secret", "Bearer " + func() string {
			t.Helper()
			return signToken(t, "wrong-secret", 1, "alice", time.Hour)
		}()},
		{"expired token", "Bearer " + func() string {
			t.Helper()
			return signToken(t, "test-secret", 1, "alice", -time.Hour)
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", tt.header)

			handler := AuthRequired(testVerifier())
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンで後続ハンドラーが実行され、ユーザー名がコンテキストに設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(testVerifier()))

	var gotUsername string
	router.GET("/", func(c *gin.Context) {
		gotUsername = c.GetString(ContextUsername)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", 7, "alice", time.Hour))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if gotUsername != "alice" {
		t.Errorf("expected context username %q, got %q", "alice", gotUsername)
	}
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"calorie_backend/internal/feature/users/domain"
	"calorie_backend/internal/feature/users/domain/entity"
	jwtmw "calorie_backend/internal/platform/jwt"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserFinder はテスト用のUserFinderモック実装です。
type mockUserFinder struct {
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
}

// FindByUsername is the mock implementation of the FindByUsername method.
func (m *mockUserFinder) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

// ownershipRouter builds a router with the auth identity preset and the
// ownership middleware applied to /users/:username.
func ownershipRouter(authUsername string, finder UserFinder) *gin.Engine {
	r := gin.New()
	r.GET("/users/:username",
		func(c *gin.Context) { c.Set(jwtmw.ContextUsername, authUsername) },
		RequireOwnership(finder),
		func(c *gin.Context) { c.JSON(http.StatusOK, UserFromContext(c)) },
	)
	return r
}

func TestRequireOwnership_MismatchIsForbidden(t *testing.T) {
	tests := []struct {
		name   string
		finder *mockUserFinder
	}{
		{
			name: "target user exists",
			finder: &mockUserFinder{
				FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
					t.Error("store must not be consulted before the identity check")
					return &entity.User{Username: username}, nil
				},
			},
		},
		{
			// 他人のアカウントの存在有無を問わず403を返す（存在確認オラクルにしない）
			name:   "target user does not exist",
			finder: &mockUserFinder{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := ownershipRouter("alice", tt.finder)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/users/bob", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "not authorised")
		})
	}
}

func TestRequireOwnership_OwnAccountMissing(t *testing.T) {
	// 自分のアカウントがセッション中に削除された場合のみ404になる
	router := ownershipRouter("alice", &mockUserFinder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestRequireOwnership_Success(t *testing.T) {
	finder := &mockUserFinder{
		FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
			return &entity.User{ID: 7, Username: username, Email: "alice@example.com", FoodLog: []entity.DailyLog{}}, nil
		},
	}
	router := ownershipRouter("alice", finder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	// パスワードハッシュはレスポンスに含まれない
	assert.NotContains(t, w.Body.String(), "password")
}

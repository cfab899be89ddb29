// Package router はアプリケーションの全ルートを組み立てます。
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "calorie_backend/internal/feature/auth/transport/handler"
	foodloghandler "calorie_backend/internal/feature/foodlog/transport/handler"
	usershandler "calorie_backend/internal/feature/users/transport/handler"
	platformhandler "calorie_backend/internal/platform/http/handler"
	jwtmw "calorie_backend/internal/platform/jwt"
	"calorie_backend/internal/shared/ratelimiter"
)

// NewRouter はルータを生成し、認証・オーナーシップ・レートリミットの
// 各ミドルウェアと全エンドポイントを配線します。
func NewRouter(
	auth *authhandler.AuthHandler,
	users *usershandler.UserHandler,
	foodlog *foodloghandler.FoodLogHandler,
	verifier *jwtmw.Verifier,
	userFinder usershandler.UserFinder,
	authLimiter *ratelimiter.RateLimiter,
) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 新規ユーザー登録（ブルートフォース緩和のためレートリミット付き）
	r.POST("/signup", authLimiter.Middleware(), auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authLimiter.Middleware(), auth.Login)

	// 認証必須のルート
	// リクエストヘッダーに Bearer トークンが必要になる
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(verifier))
	{
		// トークン確認用
		protected.GET("/secure", auth.Secure)
		// 全ユーザー一覧
		protected.GET("/users", users.List)
	}

	// 認証に加えてオーナーシップ検査が必要なルート
	// :username が認証済みユーザー自身でなければ403
	owner := protected.Group("/users/:username")
	owner.Use(usershandler.RequireOwnership(userFinder))
	{
		owner.GET("", users.Get)
		owner.PUT("", users.Update)
		owner.DELETE("", users.Delete)

		owner.GET("/foodlog", foodlog.List)
		owner.GET("/foodlog/:date", foodlog.GetDay)
		owner.POST("/foodlog/:date", foodlog.Add)
		owner.PUT("/foodlog/:date/:id", foodlog.Update)
		owner.DELETE("/foodlog/:date/:id", foodlog.Delete)
	}

	return r
}

// Package ratelimiter は固定ウィンドウ方式のレートリミッターを提供します。
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"calorie_backend/internal/api"
)

// window は1つのキー（クライアント）の現在ウィンドウの状態です。
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter は、キーごとの操作頻度を固定ウィンドウで制限します。
type RateLimiter struct {
	limit    int           // 1ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか

	mu      sync.Mutex
	windows map[string]*window
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  map[string]*window{},
	}
}

// Allow はキーに対する操作が上限内かどうかを返します。
// ウィンドウの経過でカウントはリセットされます。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	// interval を過ぎたらカウントリセット
	if now.Sub(w.lastReset) >= rl.interval {
		w.count = 0
		w.lastReset = now
	}

	w.count++
	return w.count <= rl.limit
}

// Middleware はクライアントIPをキーとするGinミドルウェアを返します。
// 上限を超えたリクエストは429で拒否されます。ログイン・サインアップなどの
// 認証エンドポイントのブルートフォース緩和に使用します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Message: "too many requests"})
			return
		}
		c.Next()
	}
}

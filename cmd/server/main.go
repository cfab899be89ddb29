package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"calorie_backend/internal/app/router"
	authhandler "calorie_backend/internal/feature/auth/transport/handler"
	authusecase "calorie_backend/internal/feature/auth/usecase"
	foodloghandler "calorie_backend/internal/feature/foodlog/transport/handler"
	foodlogusecase "calorie_backend/internal/feature/foodlog/usecase"
	"calorie_backend/internal/feature/users/adapters"
	usershandler "calorie_backend/internal/feature/users/transport/handler"
	usersusecase "calorie_backend/internal/feature/users/usecase"
	"calorie_backend/internal/platform/cache"
	infradb "calorie_backend/internal/platform/db"
	jwtmw "calorie_backend/internal/platform/jwt"
	infraredis "calorie_backend/internal/platform/redis"
	"calorie_backend/internal/shared/ratelimiter"
)

func main() {
	// JWT署名シークレットは起動時に一度だけ読み込む（以降は読み取り専用）
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set. Set a strong secret before starting the server.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	// Redisキャッシュでラップ（rdbがnilの場合は素通し）
	userRepo := cache.NewCachingUserRepository(rdb, 5*time.Minute, adapters.NewUserPostgres(db), "users")

	// JWT
	generator := jwtmw.NewGenerator(secret, jwtmw.TokenTTL)
	verifier := jwtmw.NewVerifier(secret, userRepo)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, generator)
	usersUC := usersusecase.NewUserUsecase(userRepo)
	foodlogUC := foodlogusecase.NewFoodLogUsecase(userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	usersH := usershandler.NewUserHandler(usersUC)
	foodlogH := foodloghandler.NewFoodLogHandler(foodlogUC)

	// 認証エンドポイント用レートリミッター（IPごとに毎分20回まで）
	authLimiter := ratelimiter.NewRateLimiter(20, time.Minute)

	// ルータ生成
	r := router.NewRouter(authH, usersH, foodlogH, verifier, userRepo, authLimiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

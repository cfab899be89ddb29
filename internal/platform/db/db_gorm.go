// Package db はGORMによるPostgreSQL接続のセットアップを提供します。
package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"calorie_backend/internal/feature/users/domain/entity"
)

// OpenDB はDATABASE_URL環境変数で指定された接続文字列でデータベースを開きます。
// 起動直後のデータベースを待つため、最大60秒まで接続をリトライします。
// RUN_MIGRATIONS=true の場合はスキーママイグレーションを実行します。
func OpenDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateError によりユニーク制約違反が gorm.ErrDuplicatedKey に変換される
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（users テーブル、フードログはJSONカラム）
		if err := db.AutoMigrate(&entity.User{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

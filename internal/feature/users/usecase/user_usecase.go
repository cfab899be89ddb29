// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"calorie_backend/internal/feature/users/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindAll は登録済みの全ユーザーを取得します。
	FindAll(ctx context.Context) ([]entity.User, error)

	// Save はユーザーレコード全体を上書き保存します。
	Save(ctx context.Context, u *entity.User) error

	// Delete はユーザー名でユーザーを削除し、削除されたレコードを返します。
	Delete(ctx context.Context, username string) (*entity.User, error)
}

// AccountPatch はアカウント更新の部分更新フィールドを表します。
// nilのフィールドは変更されません。パスワードとユーザー名は作成後に変更できません。
type AccountPatch struct {
	Email *string
}

// UserUsecase はユーザーアカウント操作のビジネスロジックを提供します。
type UserUsecase struct {
	users UserRepository
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// List は登録済みの全ユーザーを返します。
func (u *UserUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// Update はアカウント情報を部分更新し、更新後のユーザーを返します。
func (u *UserUsecase) Update(ctx context.Context, username string, patch AccountPatch) (*entity.User, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete はアカウントを削除し、削除されたユーザーを返します。
func (u *UserUsecase) Delete(ctx context.Context, username string) (*entity.User, error) {
	return u.users.Delete(ctx, username)
}

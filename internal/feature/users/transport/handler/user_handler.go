// Package handler はusersフィーチャーのHTTPハンドラーとオーナーシップ検査を提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"calorie_backend/internal/api"
	"calorie_backend/internal/feature/users/domain/entity"
	"calorie_backend/internal/feature/users/transport/http/dto"
	"calorie_backend/internal/feature/users/usecase"
)

// UserUsecase はユーザーアカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, username string, patch usecase.AccountPatch) (*entity.User, error)
	Delete(ctx context.Context, username string) (*entity.User, error)
}

// UserHandler はユーザーアカウント操作のHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List は登録済みの全ユーザーの一覧を返すAPIです。
// パスワードハッシュはJSONシリアライズから除外されます。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get はオーナーシップ検査済みのユーザーレコードをそのまま返すAPIです。
func (h *UserHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, UserFromContext(c))
}

// Update はアカウント情報を部分更新するAPIです。
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request"})
		return
	}
	user, err := h.uc.Update(c.Request.Context(), c.Param("username"), usecase.AccountPatch{Email: req.Email})
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete はアカウントを削除し、削除されたレコードを返すAPIです。
func (h *UserHandler) Delete(c *gin.Context) {
	user, err := h.uc.Delete(c.Request.Context(), c.Param("username"))
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

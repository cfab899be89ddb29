// Package handler はfoodlogフィーチャーのHTTPハンドラーを提供します。
// ルートはすべて認証ミドルウェアとオーナーシップ検査の後段で実行されます。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"calorie_backend/internal/api"
	"calorie_backend/internal/feature/foodlog/transport/http/dto"
	"calorie_backend/internal/feature/foodlog/usecase"
	"calorie_backend/internal/feature/users/domain/entity"
	usershandler "calorie_backend/internal/feature/users/transport/handler"
)

// FoodLogUsecase はフードログ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type FoodLogUsecase interface {
	ListLogs(user *entity.User) []entity.DailyLog
	GetDailyLog(user *entity.User, dateKey int64, mealFilter, itemFilter string) ([]entity.MealEntry, error)
	AddMeal(ctx context.Context, user *entity.User, dateKey int64, entry entity.MealEntry) (*entity.User, error)
	UpdateMeal(ctx context.Context, user *entity.User, dateKey int64, id string, patch usecase.MealPatch) (*entity.User, error)
	DeleteMeal(ctx context.Context, user *entity.User, dateKey int64, id string) (*entity.User, error)
}

// FoodLogHandler はフードログ操作のHTTPリクエストを処理します。
type FoodLogHandler struct {
	uc FoodLogUsecase
}

// NewFoodLogHandler はFoodLogHandlerの新しいインスタンスを生成します。
func NewFoodLogHandler(uc FoodLogUsecase) *FoodLogHandler {
	return &FoodLogHandler{uc: uc}
}

// List はユーザーのフードログ全体を返すAPIです。
func (h *FoodLogHandler) List(c *gin.Context) {
	user := usershandler.UserFromContext(c)
	c.JSON(http.StatusOK, h.uc.ListLogs(user))
}

// GetDay は指定日付のミール一覧を返すAPIです。
// クエリパラメータ meal / item による完全一致フィルタ（AND条件）に対応します。
// 日付が不正、または該当日のログが存在しない場合は400を返却します。
func (h *FoodLogHandler) GetDay(c *gin.Context) {
	user := usershandler.UserFromContext(c)

	dateKey, err := usecase.ParseDateKey(c.Param("date"))
	if err != nil {
		api.Error(c, err)
		return
	}

	entries, err := h.uc.GetDailyLog(user, dateKey, c.Query("meal"), c.Query("item"))
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Add は指定日付にミールエントリを追加するAPIです。
// 該当日のログが存在しない場合は新しいDailyLogを作成します。
// 成功時は更新後のユーザーレコード全体を201で返却します。
func (h *FoodLogHandler) Add(c *gin.Context) {
	user := usershandler.UserFromContext(c)

	dateKey, err := usecase.ParseDateKey(c.Param("date"))
	if err != nil {
		api.Error(c, err)
		return
	}

	var req dto.MealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request"})
		return
	}

	updated, err := h.uc.AddMeal(c.Request.Context(), user, dateKey, entity.MealEntry{
		Meal:     req.Meal,
		Item:     req.Item,
		Calories: req.Calories,
	})
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, updated)
}

// Update は指定日付・IDのミールエントリを部分更新するAPIです。
// リクエストに含まれないフィールドは元の値を維持します。
// 日付またはIDが見つからない場合は400を返却します。
func (h *FoodLogHandler) Update(c *gin.Context) {
	user := usershandler.UserFromContext(c)

	dateKey, err := usecase.ParseDateKey(c.Param("date"))
	if err != nil {
		api.Error(c, err)
		return
	}

	var req dto.MealPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request"})
		return
	}

	updated, err := h.uc.UpdateMeal(c.Request.Context(), user, dateKey, c.Param("id"), usecase.MealPatch{
		Meal:     req.Meal,
		Item:     req.Item,
		Calories: req.Calories,
	})
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete は指定日付・IDのミールエントリを削除するAPIです。
// 残りのエントリの順序は維持されます。
func (h *FoodLogHandler) Delete(c *gin.Context) {
	user := usershandler.UserFromContext(c)

	dateKey, err := usecase.ParseDateKey(c.Param("date"))
	if err != nil {
		api.Error(c, err)
		return
	}

	updated, err := h.uc.DeleteMeal(c.Request.Context(), user, dateKey, c.Param("id"))
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

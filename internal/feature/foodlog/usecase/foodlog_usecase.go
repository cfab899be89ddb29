// Package usecase implements the food-log engine: date-keyed lookups and
// add/replace/remove operations over the meal entries embedded in a user
// record.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"calorie_backend/internal/feature/users/domain"
	"calorie_backend/internal/feature/users/domain/entity"
)

// UserSaver persists a mutated user record.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserSaver interface {
	// Save overwrites the whole user record, food log included.
	Save(ctx context.Context, u *entity.User) error
}

// MealPatch carries the fields of an entry update. Nil fields are left
// unchanged; the entry ID is immutable.
type MealPatch struct {
	Meal     *string
	Item     *string
	Calories *float64
}

// FoodLogUsecase mutates the food log embedded in an already-loaded user and
// persists the whole record back. Concurrent requests against the same user
// are last-write-wins at the document level; there is no per-field merge.
type FoodLogUsecase struct {
	users UserSaver
}

// NewFoodLogUsecase creates a new FoodLogUsecase with the given repository.
func NewFoodLogUsecase(users UserSaver) *FoodLogUsecase {
	return &FoodLogUsecase{users: users}
}

// ParseDateKey converts a date path parameter into its epoch-millisecond key.
// It accepts "2006-01-02" (midnight UTC) or RFC3339. Unparseable input fails
// with domain.ErrInvalidDate rather than producing a key that silently never
// matches.
func ParseDateKey(s string) (int64, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli(), nil
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrInvalidDate, s)
}

// ListLogs returns the user's full food log, unmodified.
func (u *FoodLogUsecase) ListLogs(user *entity.User) []entity.DailyLog {
	return user.FoodLog
}

// GetDailyLog returns the meal entries recorded under the given date key,
// optionally narrowed by exact-match meal and item filters. The filters
// compose as an intersection: an entry must match every filter that is set.
// An unknown date key fails with domain.ErrDateNotFound.
func (u *FoodLogUsecase) GetDailyLog(user *entity.User, dateKey int64, mealFilter, itemFilter string) ([]entity.MealEntry, error) {
	day := user.FindDailyLog(dateKey)
	if day == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrDateNotFound, dateKey)
	}

	out := make([]entity.MealEntry, 0, len(day.Meals))
	for _, m := range day.Meals {
		if mealFilter != "" && m.Meal != mealFilter {
			continue
		}
		if itemFilter != "" && m.Item != itemFilter {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// AddMeal records a new entry under the given date key, assigning its ID. The
// day's log is created lazily on the first add and appended to otherwise.
// The whole user record is persisted; the updated user is returned.
func (u *FoodLogUsecase) AddMeal(ctx context.Context, user *entity.User, dateKey int64, entry entity.MealEntry) (*entity.User, error) {
	entry.ID = uuid.NewString()

	if day := user.FindDailyLog(dateKey); day != nil {
		day.Meals = append(day.Meals, entry)
	} else {
		user.FoodLog = append(user.FoodLog, entity.DailyLog{
			Date:  dateKey,
			Meals: []entity.MealEntry{entry},
		})
	}

	if err := u.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save food log: %w", err)
	}
	return user, nil
}

// locate finds the day for dateKey and the index of the entry with the given
// ID inside it. It is the precondition check for update and delete.
func locate(user *entity.User, dateKey int64, id string) (*entity.DailyLog, int, error) {
	day := user.FindDailyLog(dateKey)
	if day == nil {
		return nil, 0, fmt.Errorf("%w: %d", domain.ErrDateNotFound, dateKey)
	}
	idx := day.FindMealIndex(id)
	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}
	return day, idx, nil
}

// UpdateMeal applies a partial update to the entry with the given ID under
// the given date key. Only fields present in the patch overwrite the stored
// entry; the ID never changes. The whole user record is persisted and the
// updated user returned.
func (u *FoodLogUsecase) UpdateMeal(ctx context.Context, user *entity.User, dateKey int64, id string, patch MealPatch) (*entity.User, error) {
	day, idx, err := locate(user, dateKey, id)
	if err != nil {
		return nil, err
	}

	if patch.Meal != nil {
		day.Meals[idx].Meal = *patch.Meal
	}
	if patch.Item != nil {
		day.Meals[idx].Item = *patch.Item
	}
	if patch.Calories != nil {
		day.Meals[idx].Calories = *patch.Calories
	}

	if err := u.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save food log: %w", err)
	}
	return user, nil
}

// DeleteMeal removes the entry with the given ID from the day's log,
// preserving the order of the remaining entries. An emptied day is kept.
// The whole user record is persisted and the updated user returned.
func (u *FoodLogUsecase) DeleteMeal(ctx context.Context, user *entity.User, dateKey int64, id string) (*entity.User, error) {
	day, idx, err := locate(user, dateKey, id)
	if err != nil {
		return nil, err
	}

	day.Meals = append(day.Meals[:idx], day.Meals[idx+1:]...)

	if err := u.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save food log: %w", err)
	}
	return user, nil
}

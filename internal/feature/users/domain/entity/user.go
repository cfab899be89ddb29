// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User represents a registered account and its embedded food log.
// The food log is stored as part of the user record itself, so every
// mutation loads and saves the whole document.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is the unique login name. It never changes after signup.
	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`

	// Password is the bcrypt hash of the user's password.
	// It is never serialized into API responses.
	Password string `gorm:"size:255;not null" json:"-"`

	// Email is the user's contact address.
	Email string `gorm:"size:255;not null" json:"email"`

	// FoodLog holds one DailyLog per distinct date key.
	// It is serialized as a single JSON column; initialized empty on signup
	// so it is never nil.
	FoodLog []DailyLog `gorm:"serializer:json" json:"foodLog"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"-"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"-"`
}

// DailyLog groups the meal entries recorded under one date key.
// Date keys are epoch milliseconds and compared for exact equality, so two
// timestamps differing by any amount are distinct days. A day is created
// lazily on the first add and never removed, even when its Meals empties out.
type DailyLog struct {
	Date  int64       `json:"date"`
	Meals []MealEntry `json:"meals"`
}

// MealEntry is a single food item record within a DailyLog.
type MealEntry struct {
	// ID is assigned by the store when the entry is created and never
	// changes afterwards. Lookups within a day are by this ID.
	ID string `json:"id"`

	// Meal is the category, e.g. "breakfast" or "lunch".
	Meal string `json:"meal"`

	// Item describes the food itself.
	Item string `json:"item"`

	// Calories is the calorie count for the item.
	Calories float64 `json:"calories"`
}

// FindDailyLog returns a pointer to the DailyLog whose date key equals key,
// or nil when the user has no log for that date.
func (u *User) FindDailyLog(key int64) *DailyLog {
	for i := range u.FoodLog {
		if u.FoodLog[i].Date == key {
			return &u.FoodLog[i]
		}
	}
	return nil
}

// FindMealIndex returns the index of the entry with the given ID inside the
// day's Meals, or -1 when no entry matches.
func (d *DailyLog) FindMealIndex(id string) int {
	for i := range d.Meals {
		if d.Meals[i].ID == id {
			return i
		}
	}
	return -1
}

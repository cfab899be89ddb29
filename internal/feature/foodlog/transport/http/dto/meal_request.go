// Package dto defines data transfer objects for the foodlog feature's HTTP transport layer.
package dto

// MealReq represents the request body for adding a meal entry.
type MealReq struct {
	Meal     string  `json:"meal" binding:"required"`
	Item     string  `json:"item" binding:"required"`
	Calories float64 `json:"calories"`
}

// MealPatchReq represents the request body for updating a meal entry.
// Absent fields leave the stored values unchanged.
type MealPatchReq struct {
	Meal     *string  `json:"meal"`
	Item     *string  `json:"item"`
	Calories *float64 `json:"calories"`
}

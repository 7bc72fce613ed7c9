package model

import "math"

type NutritionInfo struct {
	Calories float64 `json:"calories" validate:"omitempty,gte=0"`
	Protein  float64 `json:"protein" validate:"omitempty,gte=0"`
	Carbs    float64 `json:"carbs" validate:"omitempty,gte=0"`
	Fat      float64 `json:"fat" validate:"omitempty,gte=0"`
}

type Menu struct {
	DTO
	Name        string          `gorm:"not null;size:100" json:"name"`
	Price       float64         `gorm:"not null" json:"price"`
	Type        string          `gorm:"not null" json:"type"`     // Veg, Non-Veg, Vegan, Egg
	Category    string          `gorm:"not null" json:"category"` // Breakfast, Lunch, Snacks, Dinner, Drinks, Dessert
	Description string          `gorm:"not null;size:300" json:"description"`
	ImageUrl    *string         `json:"imageUrl"`
	Available   bool            `gorm:"not null;default:true" json:"available"`
	CanteenId   uint            `gorm:"not null;index" json:"canteenId"`
	Canteen     *CanteenRequest `gorm:"foreignKey:CanteenId" json:"canteen,omitempty"`
	AccountId   uint            `gorm:"not null;index" json:"accountId"`
	SpicyLevel  string          `gorm:"default:Not Applicable" json:"spicyLevel"`
	PrepTime    string          `json:"prepTime"` // e.g. "15 mins"
	Rating      float64         `gorm:"not null;default:0" json:"rating"`
	RatingCount int             `gorm:"not null;default:0" json:"ratingCount"`
	Tags        string          `gorm:"size:300" json:"tags"`      // comma separated
	Allergens   string          `gorm:"size:300" json:"allergens"` // comma separated
	Nutrition   NutritionInfo   `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutritionInfo"`
}

type Menus []Menu

// ApplyRating folds one new rating into the running average, rounded to one
// decimal place.
func (m *Menu) ApplyRating(rating int) {
	total := m.Rating*float64(m.RatingCount) + float64(rating)
	m.RatingCount++
	m.Rating = math.Round(total/float64(m.RatingCount)*10) / 10
}

type CreateMenuInput struct {
	Name        string        `json:"name" validate:"required,max=100"`
	Price       float64       `json:"price" validate:"required,gte=0"`
	Type        string        `json:"type" validate:"required,oneof=Veg Non-Veg Vegan Egg"`
	Category    string        `json:"category" validate:"required,oneof=Breakfast Lunch Snacks Dinner Drinks Dessert"`
	Description string        `json:"description" validate:"required,max=300"`
	ImageUrl    *string       `json:"imageUrl"`
	Available   *bool         `json:"available"`
	SpicyLevel  string        `json:"spicyLevel" validate:"omitempty,oneof=Mild Medium Spicy 'Not Applicable'"`
	PrepTime    string        `json:"prepTime"`
	Tags        string        `json:"tags"`
	Allergens   string        `json:"allergens"`
	Nutrition   NutritionInfo `json:"nutritionInfo"`
}

type UpdateMenuInput struct {
	CreateMenuInput
}

type RateMenuInput struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type FilterMenu struct {
	Pagination
	Category  string `query:"category"`
	Type      string `query:"type"`
	Available *bool  `query:"available"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

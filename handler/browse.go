package handler

import (
	"strings"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CanteenWithMenu is the storefront card shown on the browse page.
type CanteenWithMenu struct {
	Canteen   model.CanteenRequest `json:"canteen"`
	Menu      model.Menus          `json:"menu"`
	ItemCount int                  `json:"itemCount"`
}

// GetCanteensWithMenu returns every approved canteen together with its
// available menu items, for the customer landing page.
func GetCanteensWithMenu(c *fiber.Ctx) error {
	db := database.DB

	var canteens model.CanteenRequests
	err := db.Where("status = ?", constants.REQUEST_APPROVED).
		Order("approved_at desc").
		Find(&canteens).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch canteens", err)
	}

	result := make([]CanteenWithMenu, 0, len(canteens))
	for _, canteen := range canteens {
		var menu model.Menus
		db.Where("canteen_id = ? AND available = ?", canteen.ID, true).
			Order("rating desc").
			Find(&menu)

		result = append(result, CanteenWithMenu{
			Canteen:   canteen,
			Menu:      menu,
			ItemCount: len(menu),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

// GetFeaturedItems returns highly rated or explicitly featured menu items,
// topped up with the newest ones when there are too few.
func GetFeaturedItems(c *fiber.Ctx) error {
	db := database.DB
	limit := c.QueryInt("limit", 8)
	if limit < 1 || limit > 50 {
		limit = 8
	}

	var featured model.Menus
	err := db.Where("available = ?", true).
		Where("rating >= ? OR tags ILIKE ?", 4.0, "%featured%").
		Order("rating desc").
		Limit(limit).
		Find(&featured).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch featured items", err)
	}

	if len(featured) < limit {
		seen := make([]uint, 0, len(featured))
		for _, m := range featured {
			seen = append(seen, m.ID)
		}

		var recent model.Menus
		query := db.Where("available = ?", true)
		if len(seen) > 0 {
			query = query.Where("id NOT IN ?", seen)
		}
		query.Order("created_at desc").
			Limit(limit - len(featured)).
			Find(&recent)

		featured = append(featured, recent...)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, featured)
}

// GetBrowseFilters returns the distinct values the frontend renders as
// filter chips.
func GetBrowseFilters(c *fiber.Ctx) error {
	db := database.DB

	var categories []string
	db.Model(&model.Menu{}).
		Where("available = ?", true).
		Distinct().
		Order("category asc").
		Pluck("category", &categories)

	var types []string
	db.Model(&model.Menu{}).
		Where("available = ?", true).
		Distinct().
		Order("type asc").
		Pluck("type", &types)

	var foodTypes []string
	db.Model(&model.CanteenRequest{}).
		Where("status = ?", constants.REQUEST_APPROVED).
		Distinct().
		Order("food_type asc").
		Pluck("food_type", &foodTypes)

	var locations []string
	db.Model(&model.CanteenRequest{}).
		Where("status = ?", constants.REQUEST_APPROVED).
		Distinct().
		Order("location asc").
		Pluck("location", &locations)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"categories":       categories,
		"types":            types,
		"canteenFoodTypes": foodTypes,
		"locations":        locations,
	})
}

// SearchMenuItems searches menu items across every approved canteen.
func SearchMenuItems(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Search query must be at least 2 characters", nil)
	}

	db := database.DB
	pattern := "%" + q + "%"

	var menus model.Menus
	err := db.
		Joins("JOIN canteen_requests ON canteen_requests.id = menus.canteen_id").
		Where("canteen_requests.status = ?", constants.REQUEST_APPROVED).
		Where("menus.available = ?", true).
		Where("menus.name ILIKE ? OR menus.description ILIKE ? OR menus.tags ILIKE ?", pattern, pattern, pattern).
		Preload("Canteen").
		Order("menus.rating desc").
		Limit(50).
		Find(&menus).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Search failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"query":   q,
		"results": menus,
		"count":   len(menus),
	})
}

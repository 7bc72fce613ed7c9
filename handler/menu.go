package handler

import (
	"errors"
	"strings"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/helper"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// AddMenuItem creates a dish under the caller's canteen. Only an approved
// canteen may hold menu items.
func AddMenuItem(c *fiber.Ctx) error {
	input := c.Locals("menuInput").(model.CreateMenuInput)

	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}

	db := database.DB
	canteenId, err := helper.RequireApprovedCanteen(db, account.ID)
	if err != nil {
		if errors.Is(err, helper.ErrNotApproved) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.CANTEEN_NOT_APPROVED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var menu model.Menu
	copier.Copy(&menu, &input)
	menu.CanteenId = canteenId
	menu.AccountId = account.ID
	menu.Available = input.Available == nil || *input.Available
	if menu.SpicyLevel == "" {
		menu.SpicyLevel = "Not Applicable"
	}

	if err := db.Create(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add menu item", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message":  "Menu item added successfully",
		"menuItem": menu,
	})
}

// EditMenuItem updates a dish; ownership and approval are both checked.
func EditMenuItem(c *fiber.Ctx) error {
	menuId := c.Locals("inputId").(uint)
	input := c.Locals("menuInput").(model.UpdateMenuInput)

	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}

	db := database.DB
	if _, err := helper.RequireApprovedCanteen(db, account.ID); err != nil {
		if errors.Is(err, helper.ErrNotApproved) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.CANTEEN_NOT_APPROVED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var menu model.Menu
	if err := db.Where("id = ? AND account_id = ?", menuId, account.ID).First(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Unauthorized: Menu item not found", err)
	}

	copier.Copy(&menu, &input.CreateMenuInput)
	if input.Available != nil {
		menu.Available = *input.Available
	}

	if err := db.Save(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update menu item", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":  "Menu item updated successfully",
		"menuItem": menu,
	})
}

// DeleteMenuItems bulk-deletes dishes owned by the caller.
func DeleteMenuItems(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)

	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}

	db := database.DB
	result := db.Where("id IN ? AND account_id = ?", input.IDs, account.ID).Delete(&model.Menu{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete menu items", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Unauthorized: Menu item not found", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Menu item deleted successfully",
		"deleted": result.RowsAffected,
	})
}

// ToggleAvailability flips one dish between sellable and sold out.
func ToggleAvailability(c *fiber.Ctx) error {
	menuId := c.Locals("inputId").(uint)

	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}

	db := database.DB
	var menu model.Menu
	if err := db.Where("id = ? AND account_id = ?", menuId, account.ID).First(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Unauthorized: Menu item not found", err)
	}

	menu.Available = !menu.Available
	if err := db.Save(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle availability", err)
	}

	state := "disabled"
	if menu.Available {
		state = "enabled"
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":  "Menu item " + state + " successfully",
		"menuItem": menu,
	})
}

// GetCanteenMenu lists one canteen's dishes for customers, with filtering,
// search and sorting.
func GetCanteenMenu(c *fiber.Ctx) error {
	canteenId := c.Locals("inputId").(uint)

	filterInput := new(model.FilterMenu)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Menu{}).Where("canteen_id = ?", canteenId)

	if filterInput.Category != "" {
		condition = condition.Where("category = ?", filterInput.Category)
	}
	if filterInput.Type != "" {
		condition = condition.Where("type = ?", filterInput.Type)
	}
	if filterInput.Available != nil {
		condition = condition.Where("available = ?", *filterInput.Available)
	}
	if filterInput.Search != "" {
		key := "%" + strings.ToLower(filterInput.Search) + "%"
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", key, key, key)
	}

	sortBy := filterInput.SortBy
	switch sortBy {
	case "price", "rating", "category", "created_at":
	default:
		sortBy = "name"
	}
	order := sortBy + " asc"
	if filterInput.SortOrder == "desc" {
		order = sortBy + " desc"
	}

	var menus model.Menus
	if err := condition.Order(order).Find(&menus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch menu items", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"menuItems": menus,
		"count":     len(menus),
	})
}

// GetMyMenu lists the caller's own dishes, grouped for the dashboard.
func GetMyMenu(c *fiber.Ctx) error {
	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}

	filterInput := new(model.FilterMenu)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Menu{}).Where("account_id = ?", account.ID)

	var totalCount int64
	condition.Count(&totalCount)

	var menus model.Menus
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Preload("Canteen").Order("category asc, name asc").Find(&menus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch menu items", err)
	}

	response := &model.ResponseCustom{
		Rows:       menus,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetMenuItem(c *fiber.Ctx) error {
	menuId := c.Locals("inputId").(uint)

	var menu model.Menu
	if err := database.DB.Preload("Canteen").First(&menu, menuId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, menu)
}

// RateMenuItem folds one customer rating into the dish's running average.
func RateMenuItem(c *fiber.Ctx) error {
	menuId := c.Locals("inputId").(uint)
	input := c.Locals("rateInput").(model.RateMenuInput)

	db := database.DB
	var menu model.Menu
	if err := db.First(&menu, menuId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_NOT_FOUND, err)
	}

	menu.ApplyRating(input.Rating)
	if err := db.Save(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit rating", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     "Rating submitted successfully",
		"newRating":   menu.Rating,
		"ratingCount": menu.RatingCount,
	})
}

// GetMenuCategories returns the distinct categories a canteen currently sells.
func GetMenuCategories(c *fiber.Ctx) error {
	canteenId := c.Locals("inputId").(uint)

	var categories []string
	err := database.DB.Model(&model.Menu{}).
		Where("canteen_id = ? AND available = ?", canteenId, true).
		Distinct().Pluck("category", &categories).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch categories", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"categories": categories})
}

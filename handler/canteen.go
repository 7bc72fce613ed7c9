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
	"gorm.io/gorm"
)

// SubmitCanteenRequest creates a new registration request for the logged-in
// account. An account with a pending or approved request must wait; a
// rejected one may reapply, which creates a fresh request and leaves the
// rejected record untouched.
func SubmitCanteenRequest(c *fiber.Ctx) error {
	input := c.Locals("canteenRequestInput").(model.CreateCanteenRequestInput)

	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOUNT_NOT_FOUND, errors.New("account does not resolve"))
	}
	if !helper.IsCanteenOwner(account) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("canteen role required"))
	}

	db := database.DB

	open, existing, err := helper.HasOpenRequest(db, account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if open {
		message := constants.REQUEST_PENDING_MSG
		if existing.Status == constants.REQUEST_APPROVED {
			message = constants.REQUEST_APPROVED_MSG
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":    "error",
			"message":   message,
			"requestId": existing.ID,
			"state":     existing.Status,
		})
	}

	inUse, err := helper.LicenseInUse(db, input.LicenseNumber)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if inUse {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.LICENSE_EXISTS, errors.New("duplicate license"))
	}

	var request model.CanteenRequest
	copier.Copy(&request, &input)
	request.AccountId = account.ID
	request.Status = constants.REQUEST_PENDING
	request.ContactEmail = strings.ToLower(input.ContactEmail)

	err = db.Transaction(func(tx *gorm.DB) error {
		request.Slug = helper.GenerateUniqueCanteenSlug(tx, input.Name)
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return tx.Model(&model.Account{}).Where("id = ?", account.ID).
			Update("canteen_request_id", request.ID).Error
	})
	if err != nil {
		// racing submissions land on the partial unique index; anything else
		// is a storage failure
		if strings.Contains(err.Error(), "idx_canteen_requests_active_license") {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.LICENSE_EXISTS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"message":   "Canteen request submitted successfully",
			"requestId": request.ID,
			"state":     request.Status,
		},
	})
}

// GetMyCanteenRequest returns the latest request of the logged-in account.
func GetMyCanteenRequest(c *fiber.Ctx) error {
	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOUNT_NOT_FOUND, nil)
	}

	request, err := helper.FindLatestRequestByAccount(database.DB, account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if request == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No request found for this user", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, request)
}

// GetRequestStatus is the lightweight poll endpoint used while waiting for a
// decision.
func GetRequestStatus(c *fiber.Ctx) error {
	requestId := c.Locals("inputId").(uint)

	var request model.CanteenRequest
	if err := database.DB.First(&request, requestId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REQUEST_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"requestId": request.ID,
		"state":     request.Status,
		"updatedAt": request.UpdatedAt,
	})
}

// GetApprovedCanteens lists approved canteens for the public storefront.
func GetApprovedCanteens(c *fiber.Ctx) error {
	filterInput := new(model.FilterCanteen)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.CanteenRequest{}).Where("status = ?", constants.REQUEST_APPROVED)

	if filterInput.FoodType != "" {
		condition = condition.Where("food_type = ?", filterInput.FoodType)
	}
	if filterInput.Location != "" {
		condition = condition.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filterInput.Location)+"%")
	}

	var totalCount int64
	condition.Count(&totalCount)

	var canteens []model.CanteenRequest
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("approved_at desc").Find(&canteens).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       canteens,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetCanteenDetail resolves one approved canteen by slug.
func GetCanteenDetail(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var canteen model.CanteenRequest
	err := database.DB.Preload("Account").
		Where("slug = ? AND status = ?", slugParam, constants.REQUEST_APPROVED).
		First(&canteen).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Canteen not found", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, canteen)
}

package handler

import (
	"errors"
	"fmt"
	"time"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/helper"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func requireAdmin(c *fiber.Ctx) (*model.Account, error) {
	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}
	if !helper.IsAdmin(account) {
		return nil, utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}
	return account, nil
}

// GetCanteenRequests lists every registration request, newest first,
// optionally filtered by status.
func GetCanteenRequests(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	filterInput := new(model.FilterCanteen)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.CanteenRequest{})
	if filterInput.Status != "" {
		if filterInput.Status != constants.REQUEST_PENDING &&
			filterInput.Status != constants.REQUEST_APPROVED &&
			filterInput.Status != constants.REQUEST_REJECTED {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_STATUS, nil)
		}
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var requests []model.CanteenRequest
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Preload("Account").Order("created_at desc").Find(&requests).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       requests,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetCanteenRequestById(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	requestId := c.Locals("inputId").(uint)

	var request model.CanteenRequest
	if err := database.DB.Preload("Account").First(&request, requestId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REQUEST_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, request)
}

// applyApproval flips a pending request to approved and mirrors the decision
// onto the owning account in one transaction.
func applyApproval(db *gorm.DB, request *model.CanteenRequest) error {
	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(request).Updates(map[string]interface{}{
			"status":      constants.REQUEST_APPROVED,
			"approved_at": now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Account{}).Where("id = ?", request.AccountId).Updates(map[string]interface{}{
			"active":             true,
			"canteen_request_id": request.ID,
		}).Error
	})
	if err != nil {
		return err
	}
	request.Status = constants.REQUEST_APPROVED
	request.ApprovedAt = &now
	return nil
}

func applyRejection(db *gorm.DB, request *model.CanteenRequest, reason string) error {
	if reason == "" {
		reason = constants.DEFAULT_REJECTION_REASON
	}
	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(request).Updates(map[string]interface{}{
			"status":           constants.REQUEST_REJECTED,
			"rejected_at":      now,
			"rejection_reason": reason,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Account{}).Where("id = ?", request.AccountId).
			Update("active", false).Error
	})
	if err != nil {
		return err
	}
	request.Status = constants.REQUEST_REJECTED
	request.RejectedAt = &now
	request.RejectionReason = reason
	return nil
}

// ApproveRequest moves a pending request to approved and mirrors the decision
// onto the owning account in the same transaction.
func ApproveRequest(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	requestId := c.Locals("inputId").(uint)
	db := database.DB

	var request model.CanteenRequest
	if err := db.First(&request, requestId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REQUEST_NOT_FOUND, err)
	}

	switch request.Status {
	case constants.REQUEST_APPROVED:
		// already decided the same way, keep the call idempotent
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"message": "Canteen request approved successfully",
			"request": request,
		})
	case constants.REQUEST_REJECTED:
		return utils.ErrorResponse(c, fiber.StatusConflict, "Request was already rejected", errors.New("terminal state"))
	}

	if err := applyApproval(db, &request); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendCanteenDecisionEmail(request.ContactEmail, utils.CanteenDecisionData{
		CanteenName: request.Name,
		Owner:       request.Owner,
		Status:      constants.REQUEST_APPROVED,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Canteen request approved successfully",
		"request": request,
	})
}

// RejectRequest moves a pending request to rejected. The owner may reapply
// later; this record itself stays rejected for good.
func RejectRequest(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	requestId := c.Locals("inputId").(uint)
	input, _ := c.Locals("rejectInput").(model.RejectRequestInput)
	db := database.DB

	var request model.CanteenRequest
	if err := db.First(&request, requestId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REQUEST_NOT_FOUND, err)
	}

	switch request.Status {
	case constants.REQUEST_REJECTED:
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"message": "Canteen request rejected",
			"request": request,
		})
	case constants.REQUEST_APPROVED:
		return utils.ErrorResponse(c, fiber.StatusConflict, "Request was already approved", errors.New("terminal state"))
	}

	if err := applyRejection(db, &request, input.Reason); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendCanteenDecisionEmail(request.ContactEmail, utils.CanteenDecisionData{
		CanteenName: request.Name,
		Owner:       request.Owner,
		Status:      constants.REQUEST_REJECTED,
		Reason:      request.RejectionReason,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Canteen request rejected",
		"request": request,
	})
}

// UpdateRequestStatus is the generic moderation endpoint; it funnels into the
// same approve/reject paths so the state machine stays in one place.
func UpdateRequestStatus(c *fiber.Ctx) error {
	input := c.Locals("statusInput").(model.UpdateRequestStatusInput)

	switch input.Status {
	case constants.REQUEST_APPROVED:
		return ApproveRequest(c)
	case constants.REQUEST_REJECTED:
		c.Locals("rejectInput", model.RejectRequestInput{Reason: input.Reason})
		return RejectRequest(c)
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_STATUS, errors.New("cannot transition back to pending"))
	}
}

// BulkRequestAction applies one decision to a batch of requests. Every id goes
// through the same terminal-state rules as the single endpoints: requests
// already decided the same way are skipped, requests decided the other way are
// reported as conflicts and left untouched.
func BulkRequestAction(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	input := c.Locals("bulkActionInput").(model.BulkRequestActionInput)
	db := database.DB

	target := constants.REQUEST_APPROVED
	if input.Action == "reject" {
		target = constants.REQUEST_REJECTED
	}

	updated := 0
	skipped := []uint{}
	conflicts := []uint{}
	notFound := []uint{}

	for _, requestId := range input.RequestIds {
		var request model.CanteenRequest
		if err := db.First(&request, requestId).Error; err != nil {
			notFound = append(notFound, requestId)
			continue
		}
		if request.Status == target {
			skipped = append(skipped, requestId)
			continue
		}
		if request.Status != constants.REQUEST_PENDING {
			conflicts = append(conflicts, requestId)
			continue
		}

		var err error
		if target == constants.REQUEST_APPROVED {
			err = applyApproval(db, &request)
		} else {
			err = applyRejection(db, &request, input.Reason)
		}
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		updated++

		utils.SendCanteenDecisionEmail(request.ContactEmail, utils.CanteenDecisionData{
			CanteenName: request.Name,
			Owner:       request.Owner,
			Status:      request.Status,
			Reason:      request.RejectionReason,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":   fmt.Sprintf("Bulk %s completed", input.Action),
		"updated":   updated,
		"skipped":   skipped,
		"conflicts": conflicts,
		"notFound":  notFound,
	})
}

// GetAllMenuItems is the cross-canteen admin view of the menu catalogue.
func GetAllMenuItems(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	filterInput := new(model.FilterMenu)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Menu{})
	if filterInput.Category != "" && filterInput.Category != "all" {
		condition = condition.Where("category = ?", filterInput.Category)
	}
	if filterInput.Type != "" && filterInput.Type != "all" {
		condition = condition.Where("type = ?", filterInput.Type)
	}
	if filterInput.Available != nil {
		condition = condition.Where("available = ?", *filterInput.Available)
	}
	if filterInput.Search != "" {
		key := "%" + filterInput.Search + "%"
		condition = condition.Where("name ILIKE ? OR description ILIKE ?", key, key)
	}

	sortBy := "created_at"
	switch filterInput.SortBy {
	case "price", "rating", "name", "updated_at":
		sortBy = filterInput.SortBy
	}
	sortOrder := "desc"
	if filterInput.SortOrder == "asc" {
		sortOrder = "asc"
	}

	var totalCount int64
	condition.Count(&totalCount)

	var menus model.Menus
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Preload("Canteen").Order(sortBy + " " + sortOrder).Find(&menus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       menus,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// DeleteMenuItemByAdmin removes any menu item regardless of owner.
func DeleteMenuItemByAdmin(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	menuId := c.Locals("inputId").(uint)
	db := database.DB

	var menu model.Menu
	if err := db.First(&menu, menuId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_NOT_FOUND, err)
	}
	if err := db.Delete(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Menu item deleted successfully",
	})
}

// DeleteRequest removes a request entirely and detaches it from the account.
func DeleteRequest(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	requestId := c.Locals("inputId").(uint)
	db := database.DB

	var request model.CanteenRequest
	if err := db.First(&request, requestId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REQUEST_NOT_FOUND, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Account{}).Where("id = ?", request.AccountId).Updates(map[string]interface{}{
			"canteen_request_id": nil,
			"active":             false,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("canteen_id = ?", request.ID).Delete(&model.Menu{}).Error; err != nil {
			return err
		}
		// orders keep their history but no longer point at the canteen
		if err := tx.Model(&model.Order{}).Where("canteen_id = ?", request.ID).
			Update("canteen_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&request).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":        "Canteen request deleted successfully",
		"deletedRequest": request,
	})
}

func GetAccounts(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	filterInput := new(model.FilterAccount)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Account{})
	if filterInput.Role != nil {
		condition = condition.Where("role = ?", *filterInput.Role)
	}
	if filterInput.Active != nil {
		condition = condition.Where("active = ?", *filterInput.Active)
	}
	if filterInput.SearchKey != "" {
		key := "%" + filterInput.SearchKey + "%"
		condition = condition.Where("username ILIKE ? OR name ILIKE ? OR email ILIKE ?", key, key, key)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var accounts model.Accounts
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Preload("CanteenRequest").Order("id desc").Find(&accounts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       accounts,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// DeleteAccount removes an account and cascades over everything it owns:
// canteen requests and menu items. Orders survive, they carry their own
// customer snapshot.
func DeleteAccount(c *fiber.Ctx) error {
	admin, err := requireAdmin(c)
	if err != nil {
		return err
	}
	accountId := c.Locals("inputId").(uint)

	if admin.ID == accountId {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot delete your own account", nil)
	}

	db := database.DB
	var account model.Account
	if err := db.First(&account, accountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOUNT_NOT_FOUND, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&model.Menu{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Account{}).Where("id = ?", account.ID).
			Update("canteen_request_id", nil).Error; err != nil {
			return err
		}
		requestIds := tx.Model(&model.CanteenRequest{}).Select("id").Where("account_id = ?", account.ID)
		if err := tx.Model(&model.Order{}).Where("canteen_id IN (?)", requestIds).
			Update("canteen_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", account.ID).Delete(&model.CanteenRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Account deleted successfully",
	})
}

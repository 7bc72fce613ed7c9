package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/helper"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PlaceOrder is the checkout endpoint. Every line is re-priced from the
// stored menu record; the client-submitted total is only accepted when it
// agrees with the recomputed one.
func PlaceOrder(c *fiber.Ctx) error {
	input := c.Locals("orderInput").(model.PlaceOrderInput)
	db := database.DB

	ids := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.MenuItemId)
	}

	var menus model.Menus
	if err := db.Where("id IN ?", ids).Find(&menus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	menuById := make(map[uint]model.Menu, len(menus))
	for _, m := range menus {
		menuById[m.ID] = m
	}

	items, total, err := helper.BuildOrderItems(menuById, input.Items)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error(), errors.New("unresolved menu item"))
	}

	if input.TotalAmount != 0 && !helper.TotalsMatch(input.TotalAmount, total) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.TOTAL_MISMATCH,
			fmt.Errorf("submitted %.2f, computed %.2f", input.TotalAmount, total))
	}

	order := model.Order{
		PublicCode:    helper.GenerateOrderCode(),
		Items:         items,
		TotalAmount:   total,
		CanteenId:     input.CanteenId,
		Notes:         strings.TrimSpace(input.Notes),
		Status:        constants.ORDER_PENDING,
		PaymentStatus: constants.PAYMENT_PENDING,
		PaymentMethod: input.PaymentMethod,
	}
	if input.PaymentStatus != "" {
		order.PaymentStatus = input.PaymentStatus
	}
	if input.CustomerInfo != nil && input.CustomerInfo.Name != "" && input.CustomerInfo.Phone != "" {
		order.Customer = model.CustomerInfo{
			Name:    strings.TrimSpace(input.CustomerInfo.Name),
			Phone:   utils.NormalizePhone(input.CustomerInfo.Phone),
			Email:   strings.ToLower(strings.TrimSpace(input.CustomerInfo.Email)),
			Address: strings.TrimSpace(input.CustomerInfo.Address),
		}
	}

	if err := db.Create(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to place order", err)
	}

	if order.CanteenId != nil {
		BroadcastCanteenOrders(*order.CanteenId)
	}

	if order.Customer.Email != "" {
		names := make([]string, 0, len(order.Items))
		for _, it := range order.Items {
			names = append(names, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
		}
		utils.SendOrderConfirmationEmail(order.Customer.Email, utils.OrderConfirmationData{
			OrderCode:   order.PublicCode,
			Items:       strings.Join(names, ", "),
			TotalAmount: order.TotalAmount,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Order placed successfully!",
		"order":   order,
	})
}

// GetOrders lists orders for the admin and canteen dashboards.
func GetOrders(c *fiber.Ctx) error {
	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}

	filterInput := new(model.FilterOrder)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Order{})

	// a canteen owner only ever sees their own orders
	if helper.IsCanteenOwner(account) {
		canteenId, err := helper.RequireApprovedCanteen(db, account.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.CANTEEN_NOT_APPROVED, err)
		}
		condition = condition.Where("canteen_id = ?", canteenId)
	} else if !helper.IsAdmin(account) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	} else if filterInput.CanteenId != nil {
		condition = condition.Where("canteen_id = ?", *filterInput.CanteenId)
	}

	if filterInput.Status != "" {
		if !model.IsValidOrderStatus(filterInput.Status) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_STATUS, nil)
		}
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	sortBy := filterInput.SortBy
	switch sortBy {
	case "total_amount", "status", "updated_at":
	default:
		sortBy = "created_at"
	}
	order := sortBy + " desc"
	if filterInput.SortOrder == "asc" {
		order = sortBy + " asc"
	}

	var orders model.Orders
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Preload("Items").Preload("Canteen").Order(order).Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch orders", err)
	}

	response := &model.ResponseCustom{
		Rows:       orders,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetOrdersByPhone lets a customer track their orders without an account.
func GetOrdersByPhone(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Params("phone"))
	if len(phone) < 10 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Valid phone number is required", nil)
	}

	var orders model.Orders
	err := database.DB.Preload("Items").Preload("Canteen").
		Where("customer_phone = ?", phone).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch orders", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetOrderDetail resolves an order by storage id or public code and attaches
// a QR of the code for pickup.
func GetOrderDetail(c *fiber.Ctx) error {
	idOrCode := c.Params("orderId")

	order, err := helper.FindOrderByAnyId(database.DB, idOrCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	qrBase64 := ""
	qrBytes, err := utils.GenerateQRCode(order.PublicCode, 400)
	if err != nil {
		log.Printf("failed to generate QR for order %s: %v", order.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":  order,
		"qrCode": qrBase64,
	})
}

// UpdateOrderStatus advances the order through its lifecycle. Transitions
// must follow pending -> confirmed -> preparing -> ready -> delivered, with
// cancellation allowed from any non-terminal state. Payment status moves
// freely.
func UpdateOrderStatus(c *fiber.Ctx) error {
	idOrCode := c.Params("orderId")
	input := c.Locals("statusInput").(model.UpdateOrderStatusInput)

	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}

	db := database.DB
	order, err := helper.FindOrderByAnyId(db, idOrCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if helper.IsCanteenOwner(account) {
		canteenId, err := helper.RequireApprovedCanteen(db, account.ID)
		if err != nil || order.CanteenId == nil || *order.CanteenId != canteenId {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Order does not belong to your canteen", err)
		}
	} else if !helper.IsAdmin(account) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	updates := map[string]interface{}{}

	if input.Status != "" && input.Status != order.Status {
		if !model.CanTransition(order.Status, input.Status) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_TRANSITION,
				fmt.Errorf("cannot move from %s to %s", order.Status, input.Status))
		}
		updates["status"] = input.Status
		if input.Status == constants.ORDER_DELIVERED || input.Status == constants.ORDER_CANCELLED {
			updates["actual_delivery_time"] = time.Now()
		}
	}

	if input.PaymentStatus != "" {
		updates["payment_status"] = input.PaymentStatus
	}

	if input.EstimatedDeliveryTime != nil {
		updates["estimated_delivery_time"] = *input.EstimatedDeliveryTime
	}

	if len(updates) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"message": "Order updated successfully",
			"order":   order,
		})
	}

	if err := db.Model(order).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order", err)
	}

	if order.CanteenId != nil {
		BroadcastCanteenOrders(*order.CanteenId)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Order updated successfully",
		"order":   order,
	})
}

// CancelOrder is shorthand for a cancellation transition.
func CancelOrder(c *fiber.Ctx) error {
	idOrCode := c.Params("orderId")
	db := database.DB

	order, err := helper.FindOrderByAnyId(db, idOrCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if !model.CanTransition(order.Status, constants.ORDER_CANCELLED) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_TRANSITION,
			fmt.Errorf("cannot cancel an order in state %s", order.Status))
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(order).Updates(map[string]interface{}{
			"status":               constants.ORDER_CANCELLED,
			"actual_delivery_time": now,
		}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to cancel order", err)
	}

	if order.CanteenId != nil {
		BroadcastCanteenOrders(*order.CanteenId)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Order cancelled successfully",
	})
}

package handler

import (
	"time"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats powers the admin dashboard: registration request counts by
// status plus today-vs-yesterday order and revenue figures.
func GetAdminStats(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	db := database.DB

	type Stats struct {
		PendingRequests  int64 `json:"pendingRequests"`
		ApprovedCanteens int64 `json:"approvedCanteens"`
		RejectedRequests int64 `json:"rejectedRequests"`
		Accounts         int64 `json:"accounts"`
		MenuItems        int64 `json:"menuItems"`

		TodayOrders   int64   `json:"todayOrders"`
		TodayRevenue  float64 `json:"todayRevenue"`
		OrdersGrowth  float64 `json:"ordersGrowth"`  // %
		RevenueGrowth float64 `json:"revenueGrowth"` // %
	}

	var stats Stats

	db.Model(&model.CanteenRequest{}).Where("status = ?", constants.REQUEST_PENDING).Count(&stats.PendingRequests)
	db.Model(&model.CanteenRequest{}).Where("status = ?", constants.REQUEST_APPROVED).Count(&stats.ApprovedCanteens)
	db.Model(&model.CanteenRequest{}).Where("status = ?", constants.REQUEST_REJECTED).Count(&stats.RejectedRequests)
	db.Model(&model.Account{}).Count(&stats.Accounts)
	db.Model(&model.Menu{}).Count(&stats.MenuItems)

	today := time.Now().In(time.Local)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())

	db.Model(&model.Order{}).
		Where("status <> ? AND created_at BETWEEN ? AND ?", constants.ORDER_CANCELLED, todayStart, todayEnd).
		Count(&stats.TodayOrders)

	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE status <> 'cancelled'
          AND created_at BETWEEN ? AND ?
    `, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayEnd.AddDate(0, 0, -1)

	var yesterdayOrders int64
	var yesterdayRevenue float64

	db.Model(&model.Order{}).
		Where("status <> ? AND created_at BETWEEN ? AND ?", constants.ORDER_CANCELLED, yesterdayStart, yesterdayEnd).
		Count(&yesterdayOrders)

	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE status <> 'cancelled'
          AND created_at BETWEEN ? AND ?
    `, yesterdayStart, yesterdayEnd).Scan(&yesterdayRevenue)

	stats.OrdersGrowth = utils.CalculateGrowth(float64(stats.TodayOrders), float64(yesterdayOrders))
	stats.RevenueGrowth = utils.CalculateGrowth(stats.TodayRevenue, yesterdayRevenue)

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

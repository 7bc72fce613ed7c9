package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/validate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: mockDb,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	database.DB = db
	return mock
}

func adminToken() *jwt.Token {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["accountId"] = float64(1)
	claims["username"] = "admin"
	return token
}

func TestCancelOrderTerminalState(t *testing.T) {
	mock := setupMockDB(t)

	app := fiber.New()
	app.Post("/orders/:orderId/cancel", CancelOrder)

	// a delivered order cannot be cancelled anymore
	orderRows := sqlmock.NewRows([]string{"id", "public_code", "status", "canteen_id", "total_amount"}).
		AddRow(5, "ORD-1718000000123-X7KQ", constants.ORDER_DELIVERED, nil, 145.0)
	mock.ExpectQuery(`SELECT .* FROM "orders" WHERE "orders"."id" = \$1`).
		WillReturnRows(orderRows)
	mock.ExpectQuery(`SELECT .* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	resp, err := app.Test(httptest.NewRequest("POST", "/orders/5/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetOrderDetailNotFound(t *testing.T) {
	mock := setupMockDB(t)

	app := fiber.New()
	app.Get("/orders/:orderId", GetOrderDetail)

	// numeric lookup misses, public code fallback misses too
	emptyOrders := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "public_code", "status", "canteen_id", "total_amount"})
	}
	mock.ExpectQuery(`SELECT .* FROM "orders" WHERE "orders"."id" = \$1`).
		WillReturnRows(emptyOrders())
	mock.ExpectQuery(`SELECT .* FROM "orders" WHERE public_code = \$1`).
		WillReturnRows(emptyOrders())

	resp, err := app.Test(httptest.NewRequest("GET", "/orders/999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateOrderStatusInvalidTransition(t *testing.T) {
	mock := setupMockDB(t)

	app := fiber.New()
	app.Patch("/orders/:orderId/status",
		func(c *fiber.Ctx) error {
			c.Locals("user", adminToken())
			return c.Next()
		},
		validate.UpdateOrderStatus(),
		UpdateOrderStatus,
	)

	accountRows := sqlmock.NewRows([]string{"id", "username", "role", "active"}).
		AddRow(1, "admin", constants.ROLE_ADMIN, true)
	mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).
		WillReturnRows(accountRows)

	// pending may not jump straight to ready
	orderRows := sqlmock.NewRows([]string{"id", "public_code", "status", "canteen_id", "total_amount"}).
		AddRow(5, "ORD-1718000000123-X7KQ", constants.ORDER_PENDING, nil, 145.0)
	mock.ExpectQuery(`SELECT .* FROM "orders" WHERE "orders"."id" = \$1`).
		WillReturnRows(orderRows)
	mock.ExpectQuery(`SELECT .* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	req := httptest.NewRequest("PATCH", "/orders/5/status", strings.NewReader(`{"status":"ready"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

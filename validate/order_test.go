package validate

import (
	"net/http/httptest"
	"strings"
	"testing"

	"canteen_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestPlaceOrderValidation(t *testing.T) {
	app := fiber.New()
	var captured model.PlaceOrderInput
	app.Post("/orders", PlaceOrder(), func(c *fiber.Ctx) error {
		captured = c.Locals("orderInput").(model.PlaceOrderInput)
		return c.SendStatus(fiber.StatusCreated)
	})

	t.Run("EmptyItemsRejected", func(t *testing.T) {
		code := postJSON(t, app, "/orders", `{"items":[]}`)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("MissingItemsRejected", func(t *testing.T) {
		code := postJSON(t, app, "/orders", `{"notes":"no cutlery"}`)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("ZeroQuantityRejected", func(t *testing.T) {
		code := postJSON(t, app, "/orders", `{"items":[{"menuItemId":1,"quantity":0}]}`)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("UnknownPaymentMethodRejected", func(t *testing.T) {
		code := postJSON(t, app, "/orders", `{"items":[{"menuItemId":1,"quantity":1}],"paymentMethod":"iou"}`)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("ValidOrderPassesThrough", func(t *testing.T) {
		code := postJSON(t, app, "/orders", `{"items":[{"menuItemId":1,"quantity":2}],"paymentMethod":"cash"}`)
		assert.Equal(t, fiber.StatusCreated, code)
		require.Len(t, captured.Items, 1)
		assert.Equal(t, uint(1), captured.Items[0].MenuItemId)
		assert.Equal(t, 2, captured.Items[0].Quantity)
	})
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	app := fiber.New()
	app.Patch("/orders/:orderId/status", UpdateOrderStatus(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	patch := func(body string) int {
		req := httptest.NewRequest("PATCH", "/orders/1/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusBadRequest, patch(`{}`))
	assert.Equal(t, fiber.StatusBadRequest, patch(`{"status":"shipped"}`))
	assert.Equal(t, fiber.StatusBadRequest, patch(`{"paymentStatus":"chargeback"}`))
	assert.Equal(t, fiber.StatusOK, patch(`{"status":"confirmed"}`))
	assert.Equal(t, fiber.StatusOK, patch(`{"paymentStatus":"paid"}`))
}

func TestGetById(t *testing.T) {
	app := fiber.New()
	app.Get("/things/:thingId", GetById("thingId"), func(c *fiber.Ctx) error {
		id := c.Locals("inputId").(uint)
		return c.JSON(fiber.Map{"id": id})
	})

	t.Run("NumericId", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/things/42", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("NonNumericRejected", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/things/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

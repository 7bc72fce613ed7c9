package validate

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"canteen_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canteenBody(phone string) string {
	return fmt.Sprintf(`{
		"name": "South Block Canteen",
		"owner": "R. Iyer",
		"licenseNumber": "FSSAI-2024-0042",
		"location": "South Block, Ground Floor",
		"contactEmail": "southblock@example.com",
		"contactPhone": "%s",
		"foodType": "Vegetarian",
		"openingHours": "8:00 AM - 8:00 PM",
		"description": "Home style vegetarian meals and snacks."
	}`, phone)
}

func TestCreateCanteenRequestValidation(t *testing.T) {
	app := fiber.New()
	var captured model.CreateCanteenRequestInput
	app.Post("/canteen/request", CreateCanteenRequest(), func(c *fiber.Ctx) error {
		captured = c.Locals("canteenRequestInput").(model.CreateCanteenRequestInput)
		return c.SendStatus(fiber.StatusCreated)
	})

	post := func(body string) int {
		req := httptest.NewRequest("POST", "/canteen/request", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("PhoneIsNormalized", func(t *testing.T) {
		code := post(canteenBody("98765-43210"))
		assert.Equal(t, fiber.StatusCreated, code)
		assert.Equal(t, "9876543210", captured.ContactPhone)
	})

	t.Run("ShortPhoneRejected", func(t *testing.T) {
		assert.Equal(t, fiber.StatusBadRequest, post(canteenBody("12345")))
	})

	t.Run("BadFoodTypeRejected", func(t *testing.T) {
		body := strings.Replace(canteenBody("9876543210"), "Vegetarian", "Fusion", 1)
		assert.Equal(t, fiber.StatusBadRequest, post(body))
	})

	t.Run("MissingLicenseRejected", func(t *testing.T) {
		body := strings.Replace(canteenBody("9876543210"), `"FSSAI-2024-0042"`, `""`, 1)
		assert.Equal(t, fiber.StatusBadRequest, post(body))
	})
}

package handler

import (
	"errors"
	"net/http/httptest"
	"testing"

	"canteen_manager/constants"
	"canteen_manager/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canteenToken(accountId uint) *jwt.Token {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["accountId"] = float64(accountId)
	claims["username"] = "ravi"
	return token
}

func submitApp(input model.CreateCanteenRequestInput) *fiber.App {
	app := fiber.New()
	app.Post("/canteen/request",
		func(c *fiber.Ctx) error {
			c.Locals("user", canteenToken(3))
			c.Locals("canteenRequestInput", input)
			return c.Next()
		},
		SubmitCanteenRequest,
	)
	return app
}

func submitInput() model.CreateCanteenRequestInput {
	return model.CreateCanteenRequestInput{
		Name:          "North Mess",
		Owner:         "Ravi",
		LicenseNumber: "FSSAI-1042",
		Location:      "Block C",
		ContactEmail:  "ravi@canteen.local",
		ContactPhone:  "9876543210",
		FoodType:      "Mixed",
		OpeningHours:  "8am - 9pm",
		Description:   "North Indian meals",
	}
}

// expectSubmitPreamble mocks everything up to the insert: account lookup, the
// open-request check, the license pre-check and the slug probe.
func expectSubmitPreamble(mock sqlmock.Sqlmock) {
	accountRows := sqlmock.NewRows([]string{"id", "username", "role", "active"}).
		AddRow(3, "ravi", constants.ROLE_CANTEEN, true)
	mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(accountRows)

	mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE account_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "status"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "canteen_requests" WHERE license_number = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "canteen_requests" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

func TestSubmitCanteenRequestStorageErrors(t *testing.T) {
	t.Run("IndexCollisionIsConflict", func(t *testing.T) {
		mock := setupMockDB(t)
		app := submitApp(submitInput())

		expectSubmitPreamble(mock)
		mock.ExpectQuery(`INSERT INTO "canteen_requests"`).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_canteen_requests_active_license" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		resp, err := app.Test(httptest.NewRequest("POST", "/canteen/request", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("UnrelatedFailureIsInternalError", func(t *testing.T) {
		mock := setupMockDB(t)
		app := submitApp(submitInput())

		expectSubmitPreamble(mock)
		mock.ExpectQuery(`INSERT INTO "canteen_requests"`).
			WillReturnError(errors.New("connection reset by peer"))
		mock.ExpectRollback()

		resp, err := app.Test(httptest.NewRequest("POST", "/canteen/request", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

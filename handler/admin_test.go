package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"canteen_manager/constants"
	"canteen_manager/validate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminApp(method, path string, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{func(c *fiber.Ctx) error {
		c.Locals("user", adminToken())
		return c.Next()
	}}, handlers...)
	app.Add(method, path, chain...)
	return app
}

func adminRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "role", "active"}).
		AddRow(1, "admin", constants.ROLE_ADMIN, true)
}

func requestRow(id, accountId uint, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "account_id", "status", "name", "owner", "contact_email"}).
		AddRow(id, accountId, status, "North Mess", "Ravi", "ravi@canteen.local")
}

func TestApproveRequestTerminalDiscipline(t *testing.T) {
	t.Run("SameDecisionIsIdempotent", func(t *testing.T) {
		mock := setupMockDB(t)
		app := adminApp("PUT", "/admin/approve/:requestId", validate.GetById("requestId"), ApproveRequest)

		mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(adminRows())
		mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
			WillReturnRows(requestRow(7, 3, constants.REQUEST_APPROVED))

		resp, err := app.Test(httptest.NewRequest("PUT", "/admin/approve/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CannotApproveRejectedRequest", func(t *testing.T) {
		mock := setupMockDB(t)
		app := adminApp("PUT", "/admin/approve/:requestId", validate.GetById("requestId"), ApproveRequest)

		mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(adminRows())
		mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
			WillReturnRows(requestRow(7, 3, constants.REQUEST_REJECTED))

		resp, err := app.Test(httptest.NewRequest("PUT", "/admin/approve/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("CannotRejectApprovedRequest", func(t *testing.T) {
		mock := setupMockDB(t)
		app := adminApp("PUT", "/admin/reject/:requestId", validate.GetById("requestId"), validate.RejectRequest(), RejectRequest)

		mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(adminRows())
		mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
			WillReturnRows(requestRow(7, 3, constants.REQUEST_APPROVED))

		resp, err := app.Test(httptest.NewRequest("PUT", "/admin/reject/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestApproveRequestMirrorsAccount(t *testing.T) {
	mock := setupMockDB(t)
	app := adminApp("PUT", "/admin/approve/:requestId", validate.GetById("requestId"), ApproveRequest)

	mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(adminRows())
	mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
		WillReturnRows(requestRow(7, 3, constants.REQUEST_PENDING))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "canteen_requests" SET`).
		WithArgs(sqlmock.AnyArg(), constants.REQUEST_APPROVED, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "accounts" SET`).
		WithArgs(true, 7, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := app.Test(httptest.NewRequest("PUT", "/admin/approve/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":"approved"`)
}

func TestBulkRequestAction(t *testing.T) {
	mock := setupMockDB(t)
	app := adminApp("PUT", "/admin/bulk-action", validate.BulkRequestAction(), BulkRequestAction)

	mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(adminRows())

	// id 1 is pending and gets approved
	mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
		WillReturnRows(requestRow(1, 3, constants.REQUEST_PENDING))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "canteen_requests" SET`).
		WithArgs(sqlmock.AnyArg(), constants.REQUEST_APPROVED, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "accounts" SET`).
		WithArgs(true, 1, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// id 2 was already approved, id 3 was rejected, id 4 does not exist
	mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
		WillReturnRows(requestRow(2, 4, constants.REQUEST_APPROVED))
	mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
		WillReturnRows(requestRow(3, 5, constants.REQUEST_REJECTED))
	mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "status"}))

	req := httptest.NewRequest("PUT", "/admin/bulk-action",
		strings.NewReader(`{"action":"approve","requestIds":[1,2,3,4]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())

	var body struct {
		Data struct {
			Updated   int    `json:"updated"`
			Skipped   []uint `json:"skipped"`
			Conflicts []uint `json:"conflicts"`
			NotFound  []uint `json:"notFound"`
		} `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 1, body.Data.Updated)
	assert.Equal(t, []uint{2}, body.Data.Skipped)
	assert.Equal(t, []uint{3}, body.Data.Conflicts)
	assert.Equal(t, []uint{4}, body.Data.NotFound)
}

func TestBulkRequestActionRejectsUnknownAction(t *testing.T) {
	setupMockDB(t)
	app := adminApp("PUT", "/admin/bulk-action", validate.BulkRequestAction(), BulkRequestAction)

	req := httptest.NewRequest("PUT", "/admin/bulk-action",
		strings.NewReader(`{"action":"purge","requestIds":[1]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteRequestDetachesOrders(t *testing.T) {
	mock := setupMockDB(t)
	app := adminApp("DELETE", "/admin/requests/:requestId", validate.GetById("requestId"), DeleteRequest)

	mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(adminRows())
	mock.ExpectQuery(`SELECT .* FROM "canteen_requests" WHERE "canteen_requests"."id" = \$1`).
		WillReturnRows(requestRow(7, 3, constants.REQUEST_APPROVED))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET`).
		WithArgs(false, nil, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "menus" WHERE canteen_id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "orders" SET "canteen_id"=\$1`).
		WithArgs(nil, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "canteen_requests" WHERE`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := app.Test(httptest.NewRequest("DELETE", "/admin/requests/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMenuItemByAdminNotFound(t *testing.T) {
	mock := setupMockDB(t)
	app := adminApp("DELETE", "/admin/menu-item/:menuId", validate.GetById("menuId"), DeleteMenuItemByAdmin)

	mock.ExpectQuery(`SELECT .* FROM "accounts" WHERE`).WillReturnRows(adminRows())
	mock.ExpectQuery(`SELECT .* FROM "menus" WHERE "menus"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	resp, err := app.Test(httptest.NewRequest("DELETE", "/admin/menu-item/99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

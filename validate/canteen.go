package validate

import (
	"errors"
	"fmt"

	"canteen_manager/constants"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateCanteenRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCanteenRequestInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		input.ContactPhone = utils.NormalizePhone(input.ContactPhone)
		if len(input.ContactPhone) != 10 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PHONE, errors.New("contactPhone must have 10 digits"))
		}

		c.Locals("canteenRequestInput", input)

		return c.Next()
	}
}

func RejectRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RejectRequestInput
		// body is optional, a missing reason falls back to the default
		c.BodyParser(&input)

		c.Locals("rejectInput", input)

		return c.Next()
	}
}

func UpdateRequestStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateRequestStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("statusInput", input)

		return c.Next()
	}
}

func BulkRequestAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BulkRequestActionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("bulkActionInput", input)

		return c.Next()
	}
}

package validate

import (
	"errors"
	"fmt"

	"canteen_manager/constants"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func PlaceOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PlaceOrderInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if len(input.Items) == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMPTY_ORDER, errors.New("empty order"))
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("orderInput", input)

		return c.Next()
	}
}

func UpdateOrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_STATUS, err)
		}

		if input.Status == "" && input.PaymentStatus == "" && input.EstimatedDeliveryTime == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("nothing to update"))
		}

		c.Locals("statusInput", input)

		return c.Next()
	}
}

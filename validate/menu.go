package validate

import (
	"errors"
	"fmt"

	"canteen_manager/constants"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateMenu() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateMenuInput
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

		if input.ImageUrl != nil && !utils.IsValidImageURL(*input.ImageUrl) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_IMAGE_URL, errors.New("imageUrl rejected"))
		}

		c.Locals("menuInput", input)

		return c.Next()
	}
}

func EditMenu() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateMenuInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.ImageUrl != nil && !utils.IsValidImageURL(*input.ImageUrl) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_IMAGE_URL, errors.New("imageUrl rejected"))
		}

		c.Locals("menuInput", input)

		return c.Next()
	}
}

func RateMenu() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RateMenuInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_RATING, err)
		}

		c.Locals("rateInput", input)

		return c.Next()
	}
}

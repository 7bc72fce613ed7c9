package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/helper"
	"canteen_manager/model"
	"canteen_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func Signup(c *fiber.Ctx) error {
	input := c.Locals("signupInput").(model.SignupInput)
	db := database.DB

	var count int64
	db.Model(&model.Account{}).Where("username = ?", input.Username).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.USERNAME_TAKEN, errors.New("username exists"))
	}

	db.Model(&model.Account{}).Where("email = ?", input.Email).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMAIL_TAKEN, errors.New("email exists"))
	}

	hashed, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	account := model.Account{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Username: input.Username,
		Password: hashed,
		Role:     input.Role,
		Active:   true,
	}

	if err := db.Create(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Signup successful",
		"account": fiber.Map{
			"id":       account.ID,
			"name":     account.Name,
			"email":    account.Email,
			"username": account.Username,
			"role":     account.Role,
			"active":   account.Active,
		},
	})
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("loginInput").(model.LoginInput)

	account, err := helper.GetAccountByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, errors.New("username not exists"))
	}

	if account.Role != input.Role {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INCORRECT_ROLE, errors.New("role mismatch"))
	}

	if !helper.CheckPasswordHash(input.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}

	if !account.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"message": "Login successful",
			"account": fiber.Map{
				"id":               account.ID,
				"name":             account.Name,
				"username":         account.Username,
				"role":             account.Role,
				"canteenRequestId": account.CanteenRequestId,
			},
			"accessToken": token,
		},
	})
}

func RefreshToken(c *fiber.Ctx) error {
	refreshCookie := c.Cookies("refresh_token")
	if refreshCookie == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token not found", nil)
	}

	token, err := helper.ParseToken(refreshCookie)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token claims", nil)
	}

	accountIdFloat, ok := claims["accountId"].(float64)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid accountId in payload", nil)
	}
	username, ok := claims["username"].(string)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username in payload", nil)
	}

	var account model.Account
	if err := database.DB.First(&account, uint(accountIdFloat)).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, err)
	}

	tokenClaim := model.TokenClaim{
		AccountId: account.ID,
		Username:  username,
		Role:      account.Role,
	}

	newAccessToken, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	newRefreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    newAccessToken,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    newRefreshToken,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"message": "refresh success"},
	})
}

func Me(c *fiber.Ctx) error {
	_, account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

// resetCodeKey namespaces reset codes in redis; the TTL makes them single
// shot in time, DEL on use makes them single shot in count.
func resetCodeKey(accountId uint) string {
	return fmt.Sprintf("reset_code:%d", accountId)
}

func ForgotPassword(c *fiber.Ctx) error {
	input := c.Locals("forgotPasswordInput").(model.ForgotPasswordInput)

	account, err := helper.GetAccountByEmailOrPhone(input.EmailOrPhone)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOUNT_NOT_FOUND, errors.New("no matching account"))
	}

	code := fmt.Sprintf("%06d", rand.Intn(900000)+100000)
	if err := database.Redis.Set(context.Background(), resetCodeKey(account.ID), code, 10*time.Minute).Err(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendResetCodeEmail(account.Email, utils.ResetCodeData{Name: account.Name, Code: code})
	log.Printf("reset code issued for account %d", account.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Reset code sent to your email",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	input := c.Locals("resetPasswordInput").(model.ResetPasswordInput)

	account, err := helper.GetAccountByEmailOrPhone(input.EmailOrPhone)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOUNT_NOT_FOUND, errors.New("no matching account"))
	}

	ctx := context.Background()
	stored, err := database.Redis.Get(ctx, resetCodeKey(account.ID)).Result()
	if err != nil || stored != input.Code {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_RESET_CODE, errors.New("code mismatch or expired"))
	}

	hashed, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Model(&model.Account{}).Where("id = ?", account.ID).
		Update("password", hashed).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	database.Redis.Del(ctx, resetCodeKey(account.ID))

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Password reset successful",
	})
}

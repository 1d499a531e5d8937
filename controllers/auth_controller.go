package controllers

import (
	"time"

	"smarty/config"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Service *services.AuthService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewAuthController(service *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Service: service, Cfg: cfg, Now: time.Now}
}

// Login authenticates an account and returns a signed JWT.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, ac.Now())
	}

	account, err := ac.Service.Authenticate(input.Email, input.Password)
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	token, err := utils.GenerateJWTToken(account.ID, account.Email, account.Role, ac.Cfg)
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"account": fiber.Map{
			"id":    account.ID,
			"email": account.Email,
			"role":  account.Role,
		},
	})
}

// Me returns the account claims carried by the request token.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaimsFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, err, ac.Now())
	}

	return c.JSON(fiber.Map{
		"account": fiber.Map{
			"id":    claims.AccountID,
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}

package controllers

import (
	"strconv"
	"time"

	"smarty/services"
	"smarty/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// renderServiceError maps core error kinds onto HTTP statuses; anything the
// core didn't classify is surfaced as a 500.
func renderServiceError(c *fiber.Ctx, now func() time.Time, err error) error {
	switch services.KindOf(err) {
	case services.KindNotFound:
		return utils.Error(c, fiber.StatusNotFound, err, now())
	case services.KindConflict:
		return utils.Error(c, fiber.StatusConflict, err, now())
	case services.KindForbidden:
		return utils.Error(c, fiber.StatusForbidden, err, now())
	}
	return utils.Error(c, fiber.StatusInternalServerError, err, now())
}

func validateStruct(input interface{}) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrors := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErrors[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
	}
	return fieldErrors
}

func paginationParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

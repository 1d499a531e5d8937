package controllers

import (
	"time"

	"smarty/config"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type MajorController struct {
	Service *services.MajorService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewMajorController(service *services.MajorService, cfg *config.Config) *MajorController {
	return &MajorController{Service: service, Cfg: cfg, Now: time.Now}
}

func (mc *MajorController) CreateMajor(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, mc.Now())
	}

	major, err := mc.Service.CreateMajor(input.Name, input.Description)
	if err != nil {
		return renderServiceError(c, mc.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Major created",
		"major":   major,
	})
}

func (mc *MajorController) GetAllMajors(c *fiber.Ctx) error {
	majors, err := mc.Service.GetAllMajors()
	if err != nil {
		return renderServiceError(c, mc.Now, err)
	}

	return c.JSON(fiber.Map{"majors": majors})
}

func (mc *MajorController) GetMajorByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	major, err := mc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, mc.Now, err)
	}

	return c.JSON(fiber.Map{"major": major})
}

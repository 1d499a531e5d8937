package controllers

import (
	"time"

	"smarty/config"
	"smarty/services"

	"github.com/gofiber/fiber/v2"
)

type StatusController struct {
	Service *services.StatusService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewStatusController(service *services.StatusService, cfg *config.Config) *StatusController {
	return &StatusController{Service: service, Cfg: cfg, Now: time.Now}
}

func (sc *StatusController) GetAllStatuses(c *fiber.Ctx) error {
	statuses, err := sc.Service.GetAllStatuses()
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{"statuses": statuses})
}

func (sc *StatusController) GetStatusByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	status, err := sc.Service.GetStatusByID(id)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{"status": status})
}

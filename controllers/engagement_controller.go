package controllers

import (
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type EngagementController struct {
	Service *services.EngagementService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewEngagementController(service *services.EngagementService, cfg *config.Config) *EngagementController {
	return &EngagementController{Service: service, Cfg: cfg, Now: time.Now}
}

func engagementResponse(e *models.Engagement) fiber.Map {
	return fiber.Map{
		"id":           e.ID,
		"professor_id": e.ProfessorID,
		"course_id":    e.CourseID,
	}
}

func engagementResponses(engagements []models.Engagement) []fiber.Map {
	out := make([]fiber.Map, 0, len(engagements))
	for i := range engagements {
		out = append(out, engagementResponse(&engagements[i]))
	}
	return out
}

func (ec *EngagementController) CreateEngagement(c *fiber.Ctx) error {
	var input struct {
		ProfessorID uint `json:"professor_id" validate:"required"`
		CourseID    uint `json:"course_id" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, ec.Now())
	}

	engagement, err := ec.Service.CreateEngagement(input.ProfessorID, input.CourseID)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Engagement created",
		"engagement": engagementResponse(engagement),
	})
}

func (ec *EngagementController) GetAllEngagements(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	engagements, total, err := ec.Service.GetAllEngagements(page, pageSize)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return utils.Paginate(c, engagementResponses(engagements), total, page, pageSize)
}

func (ec *EngagementController) GetEngagementByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	engagement, err := ec.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.JSON(fiber.Map{"engagement": engagementResponse(engagement)})
}

func (ec *EngagementController) UpdateEngagement(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		ProfessorID uint `json:"professor_id" validate:"required"`
		CourseID    uint `json:"course_id" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, ec.Now())
	}

	engagement, err := ec.Service.UpdateEngagement(id, input.ProfessorID, input.CourseID)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Engagement updated",
		"engagement": engagementResponse(engagement),
	})
}

func (ec *EngagementController) DeleteEngagement(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := ec.Service.DeleteEngagement(id); err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

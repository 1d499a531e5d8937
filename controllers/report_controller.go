package controllers

import (
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Service *services.ReportService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewReportController(service *services.ReportService, cfg *config.Config) *ReportController {
	return &ReportController{Service: service, Cfg: cfg, Now: time.Now}
}

func reportResponse(r *models.Report) fiber.Map {
	return fiber.Map{
		"id":         r.ID,
		"reason":     r.Reason,
		"post_id":    r.PostID,
		"student_id": r.StudentID,
		"created_at": r.CreatedAt,
	}
}

func reportResponses(reports []models.Report) []fiber.Map {
	out := make([]fiber.Map, 0, len(reports))
	for i := range reports {
		out = append(out, reportResponse(&reports[i]))
	}
	return out
}

func (rc *ReportController) CreateReport(c *fiber.Ctx) error {
	var input struct {
		Reason    string `json:"reason" validate:"required"`
		PostID    uint   `json:"post_id" validate:"required"`
		StudentID uint   `json:"student_id" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, rc.Now())
	}

	report, err := rc.Service.CreateReport(input.Reason, input.PostID, input.StudentID)
	if err != nil {
		return renderServiceError(c, rc.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report created",
		"report":  reportResponse(report),
	})
}

func (rc *ReportController) GetAllReports(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	reports, total, err := rc.Service.GetAllReports(page, pageSize)
	if err != nil {
		return renderServiceError(c, rc.Now, err)
	}

	return utils.Paginate(c, reportResponses(reports), total, page, pageSize)
}

func (rc *ReportController) GetReportByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	report, err := rc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, rc.Now, err)
	}

	return c.JSON(fiber.Map{"report": reportResponse(report)})
}

func (rc *ReportController) DeleteReport(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := rc.Service.DeleteReport(id); err != nil {
		return renderServiceError(c, rc.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

package controllers

import (
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type ActivityController struct {
	Service *services.ActivityService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewActivityController(service *services.ActivityService, cfg *config.Config) *ActivityController {
	return &ActivityController{Service: service, Cfg: cfg, Now: time.Now}
}

func activityResponse(a *models.Activity) fiber.Map {
	return fiber.Map{
		"id":            a.ID,
		"activity_name": a.ActivityName,
		"points":        a.Points,
		"comment":       a.Comment,
		"task_id":       a.TaskID,
		"student_id":    a.StudentID,
	}
}

func activityResponses(activities []models.Activity) []fiber.Map {
	out := make([]fiber.Map, 0, len(activities))
	for i := range activities {
		out = append(out, activityResponse(&activities[i]))
	}
	return out
}

// [+] CreateActivity godoc
// @Summary Record a student's activity against a task
// @Tags activities
// @Router /activities [post]
func (ac *ActivityController) CreateActivity(c *fiber.Ctx) error {
	var input struct {
		ActivityName string  `json:"activity_name" validate:"required"`
		Points       float64 `json:"points" validate:"gte=0"`
		Comment      string  `json:"comment"`
		TaskID       uint    `json:"task_id" validate:"required"`
		StudentID    uint    `json:"student_id" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, ac.Now())
	}

	activity, err := ac.Service.CreateActivity(services.ActivityInput{
		ActivityName: input.ActivityName,
		Points:       input.Points,
		Comment:      input.Comment,
		TaskID:       input.TaskID,
		StudentID:    input.StudentID,
	})
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Activity created",
		"activity": activityResponse(activity),
	})
}

func (ac *ActivityController) GetAllActivities(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	activities, total, err := ac.Service.GetAllActivities(page, pageSize)
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	return utils.Paginate(c, activityResponses(activities), total, page, pageSize)
}

func (ac *ActivityController) GetActivityByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	activity, err := ac.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	return c.JSON(fiber.Map{"activity": activityResponse(activity)})
}

func (ac *ActivityController) GetStudentActivitiesByCourse(c *fiber.Ctx) error {
	studentID, err := idParam(c, "studentId")
	if err != nil {
		return err
	}
	code := c.Query("code")

	activities, err := ac.Service.GetStudentActivitiesByCourse(studentID, code)
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	return c.JSON(fiber.Map{"activities": activityResponses(activities)})
}

// GetTotalActivityPointsByCourse exposes the aggregate used by the exam
// admission checks; no activities means 0.
func (ac *ActivityController) GetTotalActivityPointsByCourse(c *fiber.Ctx) error {
	studentID, err := idParam(c, "studentId")
	if err != nil {
		return err
	}
	courseID, err := idParam(c, "courseId")
	if err != nil {
		return err
	}

	total, err := ac.Service.TotalActivityPointsByCourse(studentID, courseID)
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	points := 0.0
	if total != nil {
		points = *total
	}

	return c.JSON(fiber.Map{
		"student_id":   studentID,
		"course_id":    courseID,
		"total_points": points,
	})
}

func (ac *ActivityController) UpdateActivity(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Points  float64 `json:"points" validate:"gte=0"`
		Comment string  `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, ac.Now())
	}

	activity, err := ac.Service.UpdateActivity(id, input.Points, input.Comment)
	if err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Activity updated",
		"activity": activityResponse(activity),
	})
}

func (ac *ActivityController) DeleteActivity(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := ac.Service.DeleteActivity(id); err != nil {
		return renderServiceError(c, ac.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

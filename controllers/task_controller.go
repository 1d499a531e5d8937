package controllers

import (
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type TaskController struct {
	Service *services.TaskService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewTaskController(service *services.TaskService, cfg *config.Config) *TaskController {
	return &TaskController{Service: service, Cfg: cfg, Now: time.Now}
}

func taskResponse(t *models.Task) fiber.Map {
	return fiber.Map{
		"id":              t.ID,
		"type":            t.Type,
		"max_points":      t.MaxPoints,
		"number_of_tasks": t.NumberOfTasks,
		"course_id":       t.CourseID,
	}
}

func taskResponses(tasks []models.Task) []fiber.Map {
	out := make([]fiber.Map, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskResponse(&tasks[i]))
	}
	return out
}

// [+] CreateTask godoc
// @Summary Create a task for a course
// @Tags tasks
// @Router /tasks [post]
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var input struct {
		Type          string  `json:"type" validate:"required"`
		MaxPoints     float64 `json:"max_points" validate:"gte=0"`
		NumberOfTasks int     `json:"number_of_tasks" validate:"gt=0"`
		CourseID      uint    `json:"course_id" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, tc.Now())
	}

	taskType := models.TaskType(input.Type)
	if !taskType.IsValid() {
		return utils.ValidationError(c, map[string]string{"type": "must be one of HOMEWORK, PROJECT, PRESENTATION, TEST"}, tc.Now())
	}

	task, err := tc.Service.CreateTask(services.TaskInput{
		Type:          taskType,
		MaxPoints:     input.MaxPoints,
		NumberOfTasks: input.NumberOfTasks,
		CourseID:      input.CourseID,
	})
	if err != nil {
		return renderServiceError(c, tc.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task created",
		"task":    taskResponse(task),
	})
}

func (tc *TaskController) GetAllTasks(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	tasks, total, err := tc.Service.GetAllTasks(page, pageSize)
	if err != nil {
		return renderServiceError(c, tc.Now, err)
	}

	return utils.Paginate(c, taskResponses(tasks), total, page, pageSize)
}

func (tc *TaskController) GetTaskByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	task, err := tc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, tc.Now, err)
	}

	return c.JSON(fiber.Map{"task": taskResponse(task)})
}

func (tc *TaskController) GetTasksByCourse(c *fiber.Ctx) error {
	courseID, err := idParam(c, "courseId")
	if err != nil {
		return err
	}

	tasks, err := tc.Service.GetTasksByCourse(courseID)
	if err != nil {
		return renderServiceError(c, tc.Now, err)
	}

	return c.JSON(fiber.Map{"tasks": taskResponses(tasks)})
}

func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		MaxPoints     float64 `json:"max_points" validate:"gte=0"`
		NumberOfTasks int     `json:"number_of_tasks" validate:"gt=0"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, tc.Now())
	}

	task, err := tc.Service.UpdateTask(id, input.MaxPoints, input.NumberOfTasks)
	if err != nil {
		return renderServiceError(c, tc.Now, err)
	}

	return c.JSON(fiber.Map{
		"message": "Task updated",
		"task":    taskResponse(task),
	})
}

func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := tc.Service.DeleteTask(id); err != nil {
		return renderServiceError(c, tc.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

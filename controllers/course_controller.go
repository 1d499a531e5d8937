package controllers

import (
	"strconv"
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct {
	Service *services.CourseService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewCourseController(service *services.CourseService, cfg *config.Config) *CourseController {
	return &CourseController{Service: service, Cfg: cfg, Now: time.Now}
}

func courseResponse(course *models.Course) fiber.Map {
	return fiber.Map{
		"id":          course.ID,
		"code":        course.Code,
		"full_name":   course.FullName,
		"points":      course.Points,
		"year":        course.Year,
		"semester":    course.Semester,
		"description": course.Description,
	}
}

func courseResponses(courses []models.Course) []fiber.Map {
	out := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		out = append(out, courseResponse(&courses[i]))
	}
	return out
}

func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		Code        string `json:"code" validate:"required"`
		FullName    string `json:"full_name" validate:"required"`
		Points      int    `json:"points" validate:"gt=0"`
		Year        int    `json:"year" validate:"gte=1,lte=4"`
		Semester    int    `json:"semester" validate:"gte=1,lte=8"`
		Description string `json:"description"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, cc.Now())
	}

	course, err := cc.Service.CreateCourse(services.CourseInput{
		Code:        input.Code,
		FullName:    input.FullName,
		Points:      input.Points,
		Year:        input.Year,
		Semester:    input.Semester,
		Description: input.Description,
	})
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  courseResponse(course),
	})
}

func (cc *CourseController) GetAllCourses(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	courses, total, err := cc.Service.GetAllCourses(page, pageSize)
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return utils.Paginate(c, courseResponses(courses), total, page, pageSize)
}

func (cc *CourseController) GetCourseByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	course, err := cc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.JSON(fiber.Map{"course": courseResponse(course)})
}

func (cc *CourseController) GetCoursesByYear(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}

	courses, err := cc.Service.GetCoursesByYear(year)
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.JSON(fiber.Map{"courses": courseResponses(courses)})
}

func (cc *CourseController) GetCoursesBySemester(c *fiber.Ctx) error {
	semester, err := strconv.Atoi(c.Params("semester"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid semester",
		})
	}

	courses, err := cc.Service.GetCoursesBySemester(semester)
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.JSON(fiber.Map{"courses": courseResponses(courses)})
}

func (cc *CourseController) GetCoursesByProfessor(c *fiber.Ctx) error {
	professorID, err := idParam(c, "professorId")
	if err != nil {
		return err
	}

	courses, err := cc.Service.GetCoursesByProfessor(professorID)
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.JSON(fiber.Map{"courses": courseResponses(courses)})
}

func (cc *CourseController) GetCoursesByStudent(c *fiber.Ctx) error {
	studentID, err := idParam(c, "studentId")
	if err != nil {
		return err
	}

	courses, err := cc.Service.GetCoursesByStudent(studentID)
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.JSON(fiber.Map{"courses": courseResponses(courses)})
}

func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Code        string `json:"code"`
		FullName    string `json:"full_name"`
		Points      int    `json:"points"`
		Year        int    `json:"year"`
		Semester    int    `json:"semester"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	course, err := cc.Service.UpdateCourse(id, services.CourseInput{
		Code:        input.Code,
		FullName:    input.FullName,
		Points:      input.Points,
		Year:        input.Year,
		Semester:    input.Semester,
		Description: input.Description,
	})
	if err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  courseResponse(course),
	})
}

func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := cc.Service.DeleteCourse(id); err != nil {
		return renderServiceError(c, cc.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

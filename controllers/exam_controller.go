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

type ExamController struct {
	Service *services.ExamService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewExamController(service *services.ExamService, cfg *config.Config) *ExamController {
	return &ExamController{Service: service, Cfg: cfg, Now: time.Now}
}

func examResponse(e *models.Exam) fiber.Map {
	return fiber.Map{
		"id":                  e.ID,
		"name":                e.Name,
		"points":              e.Points,
		"date_of_examination": e.DateOfExamination.Format("2006-01-02"),
		"comment":             e.Comment,
		"grade":               e.Grade,
		"total_points":        e.TotalPoints,
		"student_id":          e.StudentID,
		"course_id":           e.CourseID,
	}
}

func examResponses(exams []models.Exam) []fiber.Map {
	out := make([]fiber.Map, 0, len(exams))
	for i := range exams {
		out = append(out, examResponse(&exams[i]))
	}
	return out
}

// [+] CreateExam godoc
// @Summary Sit an exam for a course
// @Tags exams
// @Router /exams [post]
func (ec *ExamController) CreateExam(c *fiber.Ctx) error {
	var input struct {
		Name              string  `json:"name" validate:"required"`
		Points            float64 `json:"points" validate:"gte=0,lte=30"`
		DateOfExamination string  `json:"date_of_examination" validate:"required"`
		Comment           string  `json:"comment"`
		StudentID         uint    `json:"student_id" validate:"required"`
		CourseID          uint    `json:"course_id" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, ec.Now())
	}

	date, err := time.Parse("2006-01-02", input.DateOfExamination)
	if err != nil {
		return utils.ValidationError(c, map[string]string{"date_of_examination": "must be a date formatted as yyyy-mm-dd"}, ec.Now())
	}

	exam, err := ec.Service.CreateExam(services.ExamInput{
		Name:              input.Name,
		Points:            input.Points,
		DateOfExamination: date,
		Comment:           input.Comment,
		StudentID:         input.StudentID,
		CourseID:          input.CourseID,
	})
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Exam created",
		"exam":    examResponse(exam),
	})
}

func (ec *ExamController) GetAllExams(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	exams, total, err := ec.Service.GetAllExams(page, pageSize)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return utils.Paginate(c, examResponses(exams), total, page, pageSize)
}

func (ec *ExamController) GetExamByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	exam, err := ec.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.JSON(fiber.Map{"exam": examResponse(exam)})
}

func (ec *ExamController) GetExamHistoryByStudent(c *fiber.Ctx) error {
	studentID, err := idParam(c, "studentId")
	if err != nil {
		return err
	}

	exams, err := ec.Service.GetExamHistoryByStudent(studentID)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.JSON(fiber.Map{"exams": examResponses(exams)})
}

func (ec *ExamController) GetPassedExamsByStudent(c *fiber.Ctx) error {
	studentID, err := idParam(c, "studentId")
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}

	exams, err := ec.Service.GetPassedExamsByStudent(studentID, year)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.JSON(fiber.Map{"exams": examResponses(exams)})
}

func (ec *ExamController) UpdateExam(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Points  float64 `json:"points" validate:"gte=0,lte=30"`
		Comment string  `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, ec.Now())
	}

	exam, err := ec.Service.UpdateExam(id, input.Points, input.Comment)
	if err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.JSON(fiber.Map{
		"message": "Exam updated",
		"exam":    examResponse(exam),
	})
}

func (ec *ExamController) DeleteExam(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := ec.Service.DeleteExam(id); err != nil {
		return renderServiceError(c, ec.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

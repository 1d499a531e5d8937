package controllers

import (
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	Service *services.StudentService
	Auth    *services.AuthService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewStudentController(service *services.StudentService, auth *services.AuthService, cfg *config.Config) *StudentController {
	return &StudentController{Service: service, Auth: auth, Cfg: cfg, Now: time.Now}
}

func studentResponse(s *models.Student) fiber.Map {
	return fiber.Map{
		"id":      s.ID,
		"name":    s.Name,
		"surname": s.Surname,
		"index":   s.Index,
		"year":    s.Year,
		"email":   s.Account.Email,
		"major":   s.Major.Name,
		"status":  s.Status.Name,
	}
}

func studentResponses(students []models.Student) []fiber.Map {
	out := make([]fiber.Map, 0, len(students))
	for i := range students {
		out = append(out, studentResponse(&students[i]))
	}
	return out
}

func (sc *StudentController) CreateStudent(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name" validate:"required"`
		Surname  string `json:"surname" validate:"required"`
		Index    int    `json:"index" validate:"gt=0"`
		Year     int    `json:"year" validate:"gte=1,lte=4"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		MajorID  uint   `json:"major_id" validate:"required"`
		StatusID uint   `json:"status_id" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, sc.Now())
	}

	student, err := sc.Service.CreateStudent(services.StudentInput{
		Name:     input.Name,
		Surname:  input.Surname,
		Index:    input.Index,
		Year:     input.Year,
		Email:    input.Email,
		Password: input.Password,
		MajorID:  input.MajorID,
		StatusID: input.StatusID,
	})
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Student created",
		"student": studentResponse(student),
	})
}

func (sc *StudentController) GetAllStudents(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	students, total, err := sc.Service.GetAllStudents(page, pageSize)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return utils.Paginate(c, studentResponses(students), total, page, pageSize)
}

func (sc *StudentController) GetStudentByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	student, err := sc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{"student": studentResponse(student)})
}

func (sc *StudentController) GetStudentByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter email is required",
		})
	}

	student, err := sc.Service.GetStudentByEmail(email)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{"student": studentResponse(student)})
}

func (sc *StudentController) GetAverageGradeOfStudent(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	avg, err := sc.Service.GetAverageGradeOfStudent(id)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	response := fiber.Map{"student_id": id}
	if avg != nil {
		response["average_grade"] = *avg
	} else {
		response["average_grade"] = nil
	}

	return c.JSON(response)
}

func (sc *StudentController) GetStudentsByMajor(c *fiber.Ctx) error {
	majorID, err := idParam(c, "majorId")
	if err != nil {
		return err
	}

	students, err := sc.Service.GetStudentsByMajor(majorID)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{"students": studentResponses(students)})
}

func (sc *StudentController) GetStudentsByStudyStatus(c *fiber.Ctx) error {
	statusID, err := idParam(c, "statusId")
	if err != nil {
		return err
	}

	students, err := sc.Service.GetStudentsByStudyStatus(statusID)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{"students": studentResponses(students)})
}

func (sc *StudentController) GetStudentsWhoPassedCourse(c *fiber.Ctx) error {
	courseID, err := idParam(c, "courseId")
	if err != nil {
		return err
	}

	students, err := sc.Service.GetStudentsWhoPassedCourse(courseID)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{"students": studentResponses(students)})
}

func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Name     string `json:"name"`
		Surname  string `json:"surname"`
		Year     int    `json:"year"`
		MajorID  uint   `json:"major_id" validate:"required"`
		StatusID uint   `json:"status_id" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, sc.Now())
	}

	student, err := sc.Service.UpdateStudent(id, services.StudentUpdateInput{
		Name:     input.Name,
		Surname:  input.Surname,
		Year:     input.Year,
		MajorID:  input.MajorID,
		StatusID: input.StatusID,
	})
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{
		"message": "Student updated",
		"student": studentResponse(student),
	})
}

// UpdatePassword lets a student change their own password; the requester's
// token email must match the student's account.
func (sc *StudentController) UpdatePassword(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Password          string `json:"password" validate:"required,min=8"`
		ConfirmedPassword string `json:"confirmed_password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, sc.Now())
	}

	student, err := sc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	requesterEmail, _ := c.Locals("account_email").(string)
	if err := sc.Auth.CanUpdatePassword(requesterEmail, student.Account.Email); err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	student, err = sc.Service.UpdatePassword(id, input.Password, input.ConfirmedPassword)
	if err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
		"student": studentResponse(student),
	})
}

func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := sc.Service.DeleteStudent(id); err != nil {
		return renderServiceError(c, sc.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

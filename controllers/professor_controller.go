package controllers

import (
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfessorController struct {
	Service *services.ProfessorService
	Auth    *services.AuthService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewProfessorController(service *services.ProfessorService, auth *services.AuthService, cfg *config.Config) *ProfessorController {
	return &ProfessorController{Service: service, Auth: auth, Cfg: cfg, Now: time.Now}
}

func professorResponse(p *models.Professor) fiber.Map {
	return fiber.Map{
		"id":      p.ID,
		"name":    p.Name,
		"surname": p.Surname,
		"title":   p.Title,
		"email":   p.Account.Email,
	}
}

func professorResponses(professors []models.Professor) []fiber.Map {
	out := make([]fiber.Map, 0, len(professors))
	for i := range professors {
		out = append(out, professorResponse(&professors[i]))
	}
	return out
}

func (pc *ProfessorController) CreateProfessor(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name" validate:"required"`
		Surname  string `json:"surname" validate:"required"`
		Title    string `json:"title" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, pc.Now())
	}

	professor, err := pc.Service.CreateProfessor(services.ProfessorInput{
		Name:     input.Name,
		Surname:  input.Surname,
		Title:    input.Title,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Professor created",
		"professor": professorResponse(professor),
	})
}

func (pc *ProfessorController) GetAllProfessors(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	professors, total, err := pc.Service.GetAllProfessors(page, pageSize)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return utils.Paginate(c, professorResponses(professors), total, page, pageSize)
}

func (pc *ProfessorController) GetProfessorByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	professor, err := pc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.JSON(fiber.Map{"professor": professorResponse(professor)})
}

func (pc *ProfessorController) GetProfessorByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter email is required",
		})
	}

	professor, err := pc.Service.GetProfessorByEmail(email)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.JSON(fiber.Map{"professor": professorResponse(professor)})
}

func (pc *ProfessorController) GetProfessorsByCourse(c *fiber.Ctx) error {
	courseID, err := idParam(c, "courseId")
	if err != nil {
		return err
	}

	professors, err := pc.Service.GetProfessorsByCourse(courseID)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.JSON(fiber.Map{"professors": professorResponses(professors)})
}

func (pc *ProfessorController) UpdateProfessor(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
		Title   string `json:"title"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	professor, err := pc.Service.UpdateProfessor(id, input.Name, input.Surname, input.Title)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Professor updated",
		"professor": professorResponse(professor),
	})
}

func (pc *ProfessorController) UpdatePassword(c *fiber.Ctx) error {
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
		return utils.ValidationError(c, errs, pc.Now())
	}

	professor, err := pc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	requesterEmail, _ := c.Locals("account_email").(string)
	if err := pc.Auth.CanUpdatePassword(requesterEmail, professor.Account.Email); err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	professor, err = pc.Service.UpdatePassword(id, input.Password, input.ConfirmedPassword)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Password updated",
		"professor": professorResponse(professor),
	})
}

func (pc *ProfessorController) DeleteProfessor(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := pc.Service.DeleteProfessor(id); err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

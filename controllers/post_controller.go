package controllers

import (
	"time"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

type PostController struct {
	Service *services.PostService
	Cfg     *config.Config
	Now     func() time.Time
}

func NewPostController(service *services.PostService, cfg *config.Config) *PostController {
	return &PostController{Service: service, Cfg: cfg, Now: time.Now}
}

func postResponse(p *models.Post) fiber.Map {
	return fiber.Map{
		"id":           p.ID,
		"title":        p.Title,
		"content":      p.Content,
		"professor_id": p.ProfessorID,
		"created_at":   p.CreatedAt,
	}
}

func postResponses(posts []models.Post) []fiber.Map {
	out := make([]fiber.Map, 0, len(posts))
	for i := range posts {
		out = append(out, postResponse(&posts[i]))
	}
	return out
}

func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title" validate:"required"`
		Content     string `json:"content" validate:"required"`
		ProfessorID uint   `json:"professor_id" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validateStruct(input); errs != nil {
		return utils.ValidationError(c, errs, pc.Now())
	}

	post, err := pc.Service.CreatePost(input.Title, input.Content, input.ProfessorID)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created",
		"post":    postResponse(post),
	})
}

func (pc *PostController) GetAllPosts(c *fiber.Ctx) error {
	page, pageSize := paginationParams(c)

	posts, total, err := pc.Service.GetAllPosts(page, pageSize)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return utils.Paginate(c, postResponses(posts), total, page, pageSize)
}

func (pc *PostController) GetPostByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	post, err := pc.Service.GetByID(id)
	if err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.JSON(fiber.Map{"post": postResponse(post)})
}

func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := pc.Service.DeletePost(id); err != nil {
		return renderServiceError(c, pc.Now, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

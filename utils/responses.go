package utils

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the uniform error envelope. Timestamp comes from the
// caller's clock, not an ambient one.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Message   string      `json:"message,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func Error(c *fiber.Ctx, status int, err error, at time.Time) error {
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Error:     http.StatusText(status),
		Message:   err.Error(),
		Timestamp: at.UTC().Format(time.RFC3339),
	})
}

// ValidationError renders a 422 with the per-field messages.
func ValidationError(c *fiber.Ctx, errors map[string]string, at time.Time) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Success:   false,
		Error:     "Validation Error",
		Timestamp: at.UTC().Format(time.RFC3339),
		Details:   errors,
	})
}

// PaginatedResponse wraps list endpoints.
type PaginatedResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func Paginate(c *fiber.Ctx, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(PaginatedResponse{
		Success:  true,
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

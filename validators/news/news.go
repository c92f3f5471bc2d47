package newsValidator

import (
	"strings"

	"acesped/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateNews validator middleware
func CreateNews() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string   `json:"title"`
			Summary     string   `json:"summary"`
			Body        string   `json:"body"`
			CoverImage  string   `json:"coverImage"`
			Tags        []string `json:"tags"`
			IsPublished bool     `json:"isPublished"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}
		for _, tag := range reqData.Tags {
			if strings.TrimSpace(tag) == "" {
				errors["tags"] = "Tags must be non-empty strings!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNews", reqData)
		return c.Next()
	}
}

// UpdateNews validator middleware
func UpdateNews() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string   `json:"title"`
			Summary     string   `json:"summary"`
			Body        string   `json:"body"`
			CoverImage  string   `json:"coverImage"`
			Tags        []string `json:"tags"`
			IsPublished *bool    `json:"isPublished"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		for _, tag := range reqData.Tags {
			if strings.TrimSpace(tag) == "" {
				errors["tags"] = "Tags must be non-empty strings!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNewsUpdate", reqData)
		return c.Next()
	}
}

package teamValidator

import (
	"regexp"
	"strings"

	"acesped/middleware"

	"github.com/gofiber/fiber/v2"
)

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// CreateTeamMember validator middleware
func CreateTeamMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string   `json:"name"`
			Title         string   `json:"title"`
			Role          string   `json:"role"`
			Bio           string   `json:"bio"`
			Email         string   `json:"email"`
			ResearchAreas []string `json:"researchAreas"`
			SortOrder     int      `json:"sortOrder"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.Email != "" && !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		for _, area := range reqData.ResearchAreas {
			if strings.TrimSpace(area) == "" {
				errors["researchAreas"] = "Research areas must be non-empty strings!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTeamMember", reqData)
		return c.Next()
	}
}

// UpdateTeamMember validator middleware
func UpdateTeamMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string   `json:"name"`
			Title         string   `json:"title"`
			Role          string   `json:"role"`
			Bio           string   `json:"bio"`
			Email         string   `json:"email"`
			ResearchAreas []string `json:"researchAreas"`
			SortOrder     *int     `json:"sortOrder"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email != "" && !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		for _, area := range reqData.ResearchAreas {
			if strings.TrimSpace(area) == "" {
				errors["researchAreas"] = "Research areas must be non-empty strings!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTeamMemberUpdate", reqData)
		return c.Next()
	}
}

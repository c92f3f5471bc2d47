package programValidator

import (
	"strings"

	"acesped/middleware"
	"acesped/models"

	"github.com/gofiber/fiber/v2"
)

func isValidCategory(category string) bool {
	return category == string(models.ProgramCategoryGeneral) || category == string(models.ProgramCategorySkill)
}

// CreateProgram validator middleware
func CreateProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name              string   `json:"name"`
			Category          string   `json:"category"`
			Description       string   `json:"description"`
			DurationMonths    int      `json:"durationMonths"`
			EntryRequirements []string `json:"entryRequirements"`
			Banner            string   `json:"banner"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.Category != "" && !isValidCategory(reqData.Category) {
			errors["category"] = "Category must be GENERAL or SKILL!"
		}
		if reqData.DurationMonths < 0 {
			errors["durationMonths"] = "Duration cannot be negative!"
		}
		for _, req := range reqData.EntryRequirements {
			if strings.TrimSpace(req) == "" {
				errors["entryRequirements"] = "Entry requirements must be non-empty strings!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgram", reqData)
		return c.Next()
	}
}

// UpdateProgram validator middleware
func UpdateProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name              string   `json:"name"`
			Category          string   `json:"category"`
			Description       string   `json:"description"`
			DurationMonths    int      `json:"durationMonths"`
			EntryRequirements []string `json:"entryRequirements"`
			Banner            string   `json:"banner"`
			IsActive          *bool    `json:"isActive"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Category != "" && !isValidCategory(reqData.Category) {
			errors["category"] = "Category must be GENERAL or SKILL!"
		}
		if reqData.DurationMonths < 0 {
			errors["durationMonths"] = "Duration cannot be negative!"
		}
		for _, req := range reqData.EntryRequirements {
			if strings.TrimSpace(req) == "" {
				errors["entryRequirements"] = "Entry requirements must be non-empty strings!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgramUpdate", reqData)
		return c.Next()
	}
}

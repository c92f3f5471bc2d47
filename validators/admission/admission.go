package admissionValidator

import (
	"regexp"
	"strings"

	"acesped/middleware"
	admission "acesped/services/admission"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// SubmitApplication validator middleware
func SubmitApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(admission.ApplicationInput)
		if err := c.BodyParser(input); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(input.FirstName) == "" {
			errors["firstName"] = "First name is required!"
		}
		if strings.TrimSpace(input.LastName) == "" {
			errors["lastName"] = "Last name is required!"
		}
		if input.Email == "" || !isValidEmail(input.Email) {
			errors["email"] = "Invalid email!"
		}
		if strings.TrimSpace(input.Mobile) == "" {
			errors["mobile"] = "Mobile number is required!"
		}
		if strings.TrimSpace(input.Programme) == "" {
			errors["programme"] = "Programme is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApplication", input)
		return c.Next()
	}
}

// SubmitSkillApplication validator middleware
func SubmitSkillApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(admission.SkillApplicationInput)
		if err := c.BodyParser(input); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(input.FirstName) == "" {
			errors["firstName"] = "First name is required!"
		}
		if strings.TrimSpace(input.LastName) == "" {
			errors["lastName"] = "Last name is required!"
		}
		if input.Email == "" || !isValidEmail(input.Email) {
			errors["email"] = "Invalid email!"
		}
		if strings.TrimSpace(input.Mobile) == "" {
			errors["mobile"] = "Mobile number is required!"
		}
		if strings.TrimSpace(input.SkillProgramme) == "" {
			errors["skillProgramme"] = "Skill programme is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSkillApplication", input)
		return c.Next()
	}
}

// InitializePayment validator middleware
func InitializePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ApplicationNumber string `json:"applicationNumber"`
			Category          string `json:"category"`
			CallbackPath      string `json:"callbackPath"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ApplicationNumber) == "" {
			errors["applicationNumber"] = "Application number is required!"
		}
		if reqData.Category != "" && reqData.Category != "general" && reqData.Category != "skill" {
			errors["category"] = "Category must be 'general' or 'skill'!"
		}
		if reqData.CallbackPath != "" && !strings.HasPrefix(reqData.CallbackPath, "/") {
			errors["callbackPath"] = "Callback path must be relative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitialize", reqData)
		return c.Next()
	}
}

// ConfirmPayment validator middleware
func ConfirmPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reference         string `json:"reference"`
			ApplicationNumber string `json:"applicationNumber"`
			Category          string `json:"category"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Reference) == "" {
			errors["reference"] = "Payment reference is required!"
		}
		if reqData.Category != "" && reqData.Category != "general" && reqData.Category != "skill" {
			errors["category"] = "Category must be 'general' or 'skill'!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedConfirm", reqData)
		return c.Next()
	}
}

// VerifyAcceptance validator middleware
func VerifyAcceptance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email             string `json:"email"`
			ApplicationNumber string `json:"applicationNumber"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if strings.TrimSpace(reqData.ApplicationNumber) == "" {
			errors["applicationNumber"] = "Application number is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAcceptanceVerify", reqData)
		return c.Next()
	}
}

// InitializeAcceptancePayment validator middleware
func InitializeAcceptancePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ApplicationNumber string `json:"applicationNumber"`
			CallbackPath      string `json:"callbackPath"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ApplicationNumber) == "" {
			errors["applicationNumber"] = "Application number is required!"
		}
		if reqData.CallbackPath != "" && !strings.HasPrefix(reqData.CallbackPath, "/") {
			errors["callbackPath"] = "Callback path must be relative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAcceptanceInitialize", reqData)
		return c.Next()
	}
}

// ConfirmAcceptancePayment validator middleware
func ConfirmAcceptancePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reference         string `json:"reference"`
			ApplicationNumber string `json:"applicationNumber"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Reference) == "" {
			errors["reference"] = "Payment reference is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAcceptancePayment", reqData)
		return c.Next()
	}
}

// AdmissionLetter validator middleware
func AdmissionLetter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ApplicationNumber string `json:"applicationNumber"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.ApplicationNumber) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"applicationNumber": "Application number is required!",
			})
		}

		c.Locals("validatedLetter", reqData)
		return c.Next()
	}
}

package applicantValidator

import (
	"acesped/middleware"
	"acesped/models"

	"github.com/gofiber/fiber/v2"
)

// UpdateStatus validator middleware. Only review states can be set by admins;
// payment facts are written exclusively by the reconciliation flow.
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch models.ApplicantStatus(reqData.Status) {
		case models.ApplicantStatusPending,
			models.ApplicantStatusUnderReview,
			models.ApplicantStatusAdmitted,
			models.ApplicantStatusRejected:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of PENDING, UNDER_REVIEW, ADMITTED, REJECTED!",
			})
		}

		c.Locals("validatedStatusUpdate", reqData)
		return c.Next()
	}
}

package admissionRoutes

import (
	admissionControllers "acesped/controllers/admission"
	admissionValidators "acesped/validators/admission"

	"github.com/gofiber/fiber/v2"
)

func SetupAdmissionRoutes(app *fiber.App) {
	admissionGroup := app.Group("/admission")

	// Applications
	admissionGroup.Post("/applications", admissionValidators.SubmitApplication(), admissionControllers.SubmitApplication)
	admissionGroup.Post("/skill-applications", admissionValidators.SubmitSkillApplication(), admissionControllers.SubmitSkillApplication)
	admissionGroup.Get("/status", admissionControllers.ApplicationStatus)

	// Application fee
	admissionGroup.Post("/payments/initialize", admissionValidators.InitializePayment(), admissionControllers.InitializePayment)
	admissionGroup.Get("/payments/callback", admissionControllers.PaymentCallback)
	admissionGroup.Post("/payments/confirm", admissionValidators.ConfirmPayment(), admissionControllers.ConfirmPayment)

	// Acceptance fee
	admissionGroup.Post("/acceptance/verify", admissionValidators.VerifyAcceptance(), admissionControllers.VerifyAcceptance)
	admissionGroup.Post("/acceptance/initialize", admissionValidators.InitializeAcceptancePayment(), admissionControllers.InitializeAcceptancePayment)
	admissionGroup.Get("/acceptance/callback", admissionControllers.AcceptanceCallback)
	admissionGroup.Post("/acceptance/payment", admissionValidators.ConfirmAcceptancePayment(), admissionControllers.ConfirmAcceptancePayment)

	// Admission letter
	admissionGroup.Post("/admission-letter", admissionValidators.AdmissionLetter(), admissionControllers.AdmissionLetter)
}

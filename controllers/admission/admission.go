package admissionController

import (
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"acesped/config"
	"acesped/database"
	"acesped/middleware"
	"acesped/payments"
	admission "acesped/services/admission"
	"acesped/utils"

	"github.com/gofiber/fiber/v2"
)

var (
	service     *admission.Service
	serviceOnce sync.Once
)

// svc wires the admission service once, after config and database are loaded
func svc() *admission.Service {
	serviceOnce.Do(func() {
		gateway := payments.NewClient(
			config.AppConfig.PaystackBaseURL,
			config.AppConfig.PaystackSecretKey,
			time.Duration(config.AppConfig.PaystackTimeout)*time.Second,
		)
		service = admission.NewService(database.Database.Db, gateway, config.AppConfig.AdmissionSession)
		service.SetNotifier(utils.MailNotifier{})
	})
	return service
}

// callbackURL builds the gateway redirect target. The resolution hints ride
// along as query parameters so the callback handler can find the record
// without any client-side state.
func callbackURL(path, defaultPath string, params url.Values) string {
	if path == "" {
		path = defaultPath
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return config.AppConfig.PortalBaseURL + path + sep + params.Encode()
}

// respondServiceError maps admission/payment errors onto the response envelope
func respondServiceError(c *fiber.Ctx, err error) error {
	var vErr *admission.ValidationError
	switch {
	case errors.As(err, &vErr):
		return middleware.ValidationErrorResponse(c, vErr.Fields)
	case errors.Is(err, admission.ErrRecordNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	case errors.Is(err, admission.ErrAcceptanceRequired):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Acceptance fee has not been paid!", nil)
	case errors.Is(err, admission.ErrNotAdmitted):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Applicant has not been admitted!", nil)
	case errors.Is(err, admission.ErrPaymentNotConfirmed):
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment could not be confirmed. Please retry with your payment reference.", nil)
	case errors.Is(err, payments.ErrInvalidReference):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown payment reference!", nil)
	case errors.Is(err, payments.ErrGatewayUnavailable):
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable. Please try again shortly.", nil)
	case errors.Is(err, payments.ErrInvalidAmount):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment amount!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// SubmitApplication handles a general admission form submission
func SubmitApplication(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedApplication").(*admission.ApplicationInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Document uploads arrive on the same multipart form when present; the
	// record stores the servable URL, not the filesystem path
	if file, err := c.FormFile("passportPhoto"); err == nil {
		if path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir, "passport"); err == nil {
			input.PassportPhoto = utils.GetFileURL(path)
		}
	}
	if file, err := c.FormFile("credentials"); err == nil {
		if path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir, "credentials"); err == nil {
			input.Credentials = utils.GetFileURL(path)
		}
	}

	applicant, err := svc().SubmitApplication(*input)
	if err != nil {
		return respondServiceError(c, err)
	}

	go utils.SendApplicationReceivedEmail(applicant.Email, applicant.FirstName, applicant.ApplicationNumber)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted!", fiber.Map{
		"applicationNumber": applicant.ApplicationNumber,
		"status":            applicant.Status,
		"admissionSession":  applicant.AdmissionSession,
	})
}

// SubmitSkillApplication handles a skills-training form submission
func SubmitSkillApplication(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedSkillApplication").(*admission.SkillApplicationInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	applicant, err := svc().SubmitSkillApplication(*input)
	if err != nil {
		return respondServiceError(c, err)
	}

	go utils.SendApplicationReceivedEmail(applicant.Email, applicant.FirstName, applicant.ApplicationNumber)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted!", fiber.Map{
		"applicationNumber": applicant.ApplicationNumber,
		"status":            applicant.Status,
		"admissionSession":  applicant.AdmissionSession,
	})
}

// InitializePayment opens a gateway transaction for the application fee
func InitializePayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedInitialize").(*struct {
		ApplicationNumber string `json:"applicationNumber"`
		Category          string `json:"category"`
		CallbackPath      string `json:"callbackPath"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := reqData.Category
	if category == "" {
		category = "general"
	}
	fee := config.AppConfig.ApplicationFee
	if category == "skill" {
		fee = config.AppConfig.SkillFee
	}

	cb := callbackURL(reqData.CallbackPath, "/admission/payments/callback", url.Values{
		"category":          {category},
		"applicationNumber": {reqData.ApplicationNumber},
	})

	var result *payments.InitResult
	var err error
	if category == "skill" {
		result, err = svc().InitializeSkillPayment(reqData.ApplicationNumber, payments.ToKobo(fee), cb)
	} else {
		result, err = svc().InitializeApplicationPayment(reqData.ApplicationNumber, payments.ToKobo(fee), cb)
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initialized!", fiber.Map{
		"authorization_url": result.AuthorizationURL,
		"reference":         result.Reference,
	})
}

// PaymentCallback is the gateway redirect target. The reference on the query
// string is only a hint; confirmation still goes through verify.
func PaymentCallback(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref") // Paystack sends both
	}
	numberHint := c.Query("applicationNumber")
	category := c.Query("category")

	if reference == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing payment reference!", nil)
	}

	if category == "skill" {
		applicant, err := svc().ConfirmSkillApplicationPayment(reference, numberHint)
		if err != nil {
			return respondServiceError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", applicant)
	}

	applicant, err := svc().ConfirmApplicationPayment(reference, numberHint)
	if err != nil {
		return respondServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", applicant)
}

// AcceptanceCallback is the gateway redirect target for the acceptance fee
func AcceptanceCallback(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	numberHint := c.Query("applicationNumber")

	if reference == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing payment reference!", nil)
	}

	applicant, err := svc().ConfirmAcceptancePayment(reference, numberHint)
	if err != nil {
		return respondServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Acceptance fee confirmed!", fiber.Map{
		"applicationNumber":          applicant.ApplicationNumber,
		"status":                     applicant.Status,
		"acceptanceFeePaid":          applicant.AcceptanceFeePaid,
		"acceptancePaidAt":           applicant.AcceptancePaidAt,
		"acceptancePaymentReference": applicant.AcceptancePaymentReference,
	})
}

// ConfirmPayment reconciles an application-fee payment. Safe to call any
// number of times with the same reference.
func ConfirmPayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedConfirm").(*struct {
		Reference         string `json:"reference"`
		ApplicationNumber string `json:"applicationNumber"`
		Category          string `json:"category"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Category == "skill" {
		applicant, err := svc().ConfirmSkillApplicationPayment(reqData.Reference, reqData.ApplicationNumber)
		if err != nil {
			return respondServiceError(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", applicant)
	}

	applicant, err := svc().ConfirmApplicationPayment(reqData.Reference, reqData.ApplicationNumber)
	if err != nil {
		return respondServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", applicant)
}

// VerifyAcceptance re-verifies applicant identity before the acceptance flow
func VerifyAcceptance(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAcceptanceVerify").(*struct {
		Email             string `json:"email"`
		ApplicationNumber string `json:"applicationNumber"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	applicant, err := svc().VerifyAcceptanceIdentity(reqData.Email, reqData.ApplicationNumber)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applicant verified!", fiber.Map{
		"applicationNumber": applicant.ApplicationNumber,
		"firstName":         applicant.FirstName,
		"lastName":          applicant.LastName,
		"programme":         applicant.Programme,
		"status":            applicant.Status,
		"acceptanceFeePaid": applicant.AcceptanceFeePaid,
		"acceptancePaidAt":  applicant.AcceptancePaidAt,
	})
}

// InitializeAcceptancePayment opens a gateway transaction for the acceptance fee
func InitializeAcceptancePayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAcceptanceInitialize").(*struct {
		ApplicationNumber string `json:"applicationNumber"`
		CallbackPath      string `json:"callbackPath"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	cb := callbackURL(reqData.CallbackPath, "/admission/acceptance/callback", url.Values{
		"applicationNumber": {reqData.ApplicationNumber},
	})

	result, err := svc().InitializeAcceptancePayment(reqData.ApplicationNumber, payments.ToKobo(config.AppConfig.AcceptanceFee), cb)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Acceptance payment initialized!", fiber.Map{
		"authorization_url": result.AuthorizationURL,
		"reference":         result.Reference,
	})
}

// ConfirmAcceptancePayment reconciles the acceptance fee; idempotent
func ConfirmAcceptancePayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAcceptancePayment").(*struct {
		Reference         string `json:"reference"`
		ApplicationNumber string `json:"applicationNumber"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	applicant, err := svc().ConfirmAcceptancePayment(reqData.Reference, reqData.ApplicationNumber)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Acceptance fee confirmed!", fiber.Map{
		"applicationNumber":          applicant.ApplicationNumber,
		"status":                     applicant.Status,
		"acceptanceFeePaid":          applicant.AcceptanceFeePaid,
		"acceptancePaidAt":           applicant.AcceptancePaidAt,
		"acceptancePaymentReference": applicant.AcceptancePaymentReference,
	})
}

// AdmissionLetter returns the letter payload; 403 until the acceptance fee is
// confirmed, 404 for unknown application numbers.
func AdmissionLetter(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLetter").(*struct {
		ApplicationNumber string `json:"applicationNumber"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	letter, err := svc().IssueAdmissionLetter(reqData.ApplicationNumber)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admission letter issued!", letter)
}

// ApplicationStatus is the applicant-facing status lookup
func ApplicationStatus(c *fiber.Ctx) error {
	email := c.Query("email")
	number := c.Query("applicationNumber")
	if email == "" || number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "email and applicationNumber are required!", nil)
	}

	applicant, err := svc().GetApplicationStatus(email, number)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application found!", fiber.Map{
		"applicationNumber":  applicant.ApplicationNumber,
		"status":             applicant.Status,
		"programme":          applicant.Programme,
		"admissionSession":   applicant.AdmissionSession,
		"applicationFeePaid": applicant.ApplicationFeePaid,
		"acceptanceFeePaid":  applicant.AcceptanceFeePaid,
	})
}

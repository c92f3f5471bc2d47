package admission

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"acesped/models"
	"acesped/payments"
	"acesped/utils"

	"gorm.io/gorm"
)

// Gateway is the slice of the payment provider the admission flow uses.
// payments.Client satisfies it; tests substitute a fake.
type Gateway interface {
	Initialize(email string, amountKobo int64, callbackURL string, metadata map[string]string) (*payments.InitResult, error)
	Verify(reference string) (*payments.VerifyResult, error)
}

// Notifier receives lifecycle events. Events fire only when a transition was
// actually applied, so duplicate confirms never notify twice. A nil notifier
// disables notifications.
type Notifier interface {
	ApplicationFeeConfirmed(applicant *models.Applicant)
	SkillEnrolled(applicant *models.SkillApplicant)
	AcceptanceConfirmed(applicant *models.Applicant)
}

// Service owns the applicant lifecycle: submission, payment reconciliation,
// acceptance and admission-letter issuance.
type Service struct {
	db       *gorm.DB
	gateway  Gateway
	session  string // current admission session, e.g. "2026/2027"
	notifier Notifier
}

func NewService(db *gorm.DB, gateway Gateway, session string) *Service {
	return &Service{db: db, gateway: gateway, session: session}
}

// SetNotifier attaches lifecycle notifications (email in production)
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ApplicationInput is a general admission form payload
type ApplicationInput struct {
	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"dateOfBirth"`
	Nationality   string `json:"nationality"`
	StateOfOrigin string `json:"stateOfOrigin"`
	Address       string `json:"address"`
	Programme     string `json:"programme"`
	ModeOfStudy   string `json:"modeOfStudy"`
	PassportPhoto string `json:"passportPhoto"`
	Credentials   string `json:"credentials"`
}

// SkillApplicationInput is a skills-training form payload
type SkillApplicationInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	SkillProgramme string `json:"skillProgramme"`
}

func validateCommon(firstName, lastName, email, mobile, programme string) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(firstName) == "" {
		errs["firstName"] = "First name is required!"
	}
	if strings.TrimSpace(lastName) == "" {
		errs["lastName"] = "Last name is required!"
	}
	if email == "" || !emailRe.MatchString(email) {
		errs["email"] = "Invalid email!"
	}
	if strings.TrimSpace(mobile) == "" {
		errs["mobile"] = "Mobile number is required!"
	}
	if strings.TrimSpace(programme) == "" {
		errs["programme"] = "Programme is required!"
	}
	return errs
}

// mintApplicationNumber generates a unique application number, re-minting on
// the (unlikely) suffix collision. table is the GORM model to check against.
func (s *Service) mintApplicationNumber(table interface{}) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		number := utils.GenerateApplicationNumber(s.session)
		var count int64
		if err := s.db.Model(table).Where("application_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique application number")
}

// SubmitApplication validates and persists a general admission application.
// The new record starts at PENDING with no payment facts.
func (s *Service) SubmitApplication(input ApplicationInput) (*models.Applicant, error) {
	if errs := validateCommon(input.FirstName, input.LastName, input.Email, input.Mobile, input.Programme); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	number, err := s.mintApplicationNumber(&models.Applicant{})
	if err != nil {
		return nil, err
	}

	applicant := models.Applicant{
		ApplicationNumber: number,
		FirstName:         input.FirstName,
		MiddleName:        input.MiddleName,
		LastName:          input.LastName,
		Email:             input.Email,
		Mobile:            input.Mobile,
		Gender:            input.Gender,
		DateOfBirth:       input.DateOfBirth,
		Nationality:       input.Nationality,
		StateOfOrigin:     input.StateOfOrigin,
		Address:           input.Address,
		Programme:         input.Programme,
		ModeOfStudy:       input.ModeOfStudy,
		AdmissionSession:  s.session,
		Status:            models.ApplicantStatusPending,
		PassportPhoto:     input.PassportPhoto,
		Credentials:       input.Credentials,
	}
	if applicant.ModeOfStudy == "" {
		applicant.ModeOfStudy = "FULL-TIME"
	}

	if err := s.db.Create(&applicant).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}

// SubmitSkillApplication validates and persists a skills-training application.
// The record starts at AWAITING_PAYMENT; confirming the application fee moves
// it to ENROLLED.
func (s *Service) SubmitSkillApplication(input SkillApplicationInput) (*models.SkillApplicant, error) {
	if errs := validateCommon(input.FirstName, input.LastName, input.Email, input.Mobile, input.SkillProgramme); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	number, err := s.mintApplicationNumber(&models.SkillApplicant{})
	if err != nil {
		return nil, err
	}

	applicant := models.SkillApplicant{
		ApplicationNumber: number,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Mobile:            input.Mobile,
		Gender:            input.Gender,
		Address:           input.Address,
		SkillProgramme:    input.SkillProgramme,
		AdmissionSession:  s.session,
		Status:            models.SkillStatusAwaitingPayment,
	}

	if err := s.db.Create(&applicant).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}

// InitializeApplicationPayment opens a gateway transaction for the application
// fee and stores the minted reference on the record so the redirect callback
// can resolve it later. The stored reference is a hint only; paid flags are
// written exclusively by the confirm path after a verify call.
func (s *Service) InitializeApplicationPayment(applicationNumber string, amountKobo int64, callbackURL string) (*payments.InitResult, error) {
	applicant, err := s.findByNumber(applicationNumber)
	if err != nil {
		return nil, err
	}

	res, err := s.gateway.Initialize(applicant.Email, amountKobo, callbackURL, map[string]string{
		"applicationNumber": applicant.ApplicationNumber,
		"purpose":           "application-fee",
	})
	if err != nil {
		return nil, err
	}

	if !applicant.ApplicationFeePaid {
		if err := s.db.Model(applicant).Update("payment_reference", res.Reference).Error; err != nil {
			return nil, err
		}
	}
	return res, nil
}

// InitializeSkillPayment is the skills-training counterpart of
// InitializeApplicationPayment.
func (s *Service) InitializeSkillPayment(applicationNumber string, amountKobo int64, callbackURL string) (*payments.InitResult, error) {
	var applicant models.SkillApplicant
	err := s.db.Where("application_number = ? AND is_deleted = false", applicationNumber).First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	res, err := s.gateway.Initialize(applicant.Email, amountKobo, callbackURL, map[string]string{
		"applicationNumber": applicant.ApplicationNumber,
		"purpose":           "skill-application-fee",
	})
	if err != nil {
		return nil, err
	}

	if !applicant.ApplicationFeePaid {
		if err := s.db.Model(&applicant).Update("payment_reference", res.Reference).Error; err != nil {
			return nil, err
		}
	}
	return res, nil
}

// InitializeAcceptancePayment opens a gateway transaction for the acceptance
// fee. Only reachable for ADMITTED applicants. Nothing is written here: the
// acceptance triple is set in one piece by ConfirmAcceptancePayment, and the
// in-flight reference comes back on the gateway redirect together with the
// application number as resolution hint.
func (s *Service) InitializeAcceptancePayment(applicationNumber string, amountKobo int64, callbackURL string) (*payments.InitResult, error) {
	applicant, err := s.findByNumber(applicationNumber)
	if err != nil {
		return nil, err
	}
	if applicant.Status != models.ApplicantStatusAdmitted {
		return nil, ErrNotAdmitted
	}

	return s.gateway.Initialize(applicant.Email, amountKobo, callbackURL, map[string]string{
		"applicationNumber": applicant.ApplicationNumber,
		"purpose":           "acceptance-fee",
	})
}

func (s *Service) findByNumber(applicationNumber string) (*models.Applicant, error) {
	var applicant models.Applicant
	err := s.db.Where("application_number = ? AND is_deleted = false", applicationNumber).First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

// resolveApplicant finds the record a reference belongs to, falling back to
// the application-number hint when the reference alone does not resolve
// (the client may only have the number persisted locally while the reference
// arrives fresh on redirect).
func (s *Service) resolveApplicant(column, reference, numberHint string) (*models.Applicant, error) {
	var applicant models.Applicant
	err := s.db.Where(column+" = ? AND is_deleted = false", reference).First(&applicant).Error
	if err == nil {
		return &applicant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if numberHint == "" {
		return nil, ErrRecordNotFound
	}
	return s.findByNumber(numberHint)
}

// ConfirmApplicationPayment reconciles an application-fee payment exactly
// once. Already-paid records short-circuit without a gateway call or write.
// The unpaid-to-paid transition is a conditional update so concurrent
// duplicate confirms cannot double-apply.
func (s *Service) ConfirmApplicationPayment(reference, numberHint string) (*models.Applicant, error) {
	if reference == "" {
		return nil, ErrRecordNotFound
	}

	applicant, err := s.resolveApplicant("payment_reference", reference, numberHint)
	if err != nil {
		return nil, err
	}
	if applicant.ApplicationFeePaid {
		return applicant, nil
	}

	result, err := s.gateway.Verify(reference)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, ErrPaymentNotConfirmed
	}

	now := time.Now()
	res := s.db.Model(&models.Applicant{}).
		Where("id = ? AND application_fee_paid = ?", applicant.ID, false).
		Updates(map[string]interface{}{
			"application_fee_paid": true,
			"application_paid_at":  now,
			"payment_reference":    reference,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	// RowsAffected == 0 means a concurrent confirm won the race; either way
	// the re-read below returns the single applied transition.
	fresh, err := s.findByNumber(applicant.ApplicationNumber)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 1 && s.notifier != nil {
		s.notifier.ApplicationFeeConfirmed(fresh)
	}
	return fresh, nil
}

// ConfirmSkillApplicationPayment is the skills-training counterpart of
// ConfirmApplicationPayment; a confirmed fee also moves the record from
// AWAITING_PAYMENT to ENROLLED.
func (s *Service) ConfirmSkillApplicationPayment(reference, numberHint string) (*models.SkillApplicant, error) {
	if reference == "" {
		return nil, ErrRecordNotFound
	}

	var applicant models.SkillApplicant
	err := s.db.Where("payment_reference = ? AND is_deleted = false", reference).First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) && numberHint != "" {
		err = s.db.Where("application_number = ? AND is_deleted = false", numberHint).First(&applicant).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if applicant.ApplicationFeePaid {
		return &applicant, nil
	}

	result, err := s.gateway.Verify(reference)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, ErrPaymentNotConfirmed
	}

	now := time.Now()
	res := s.db.Model(&models.SkillApplicant{}).
		Where("id = ? AND application_fee_paid = ?", applicant.ID, false).
		Updates(map[string]interface{}{
			"application_fee_paid": true,
			"application_paid_at":  now,
			"payment_reference":    reference,
			"status":               models.SkillStatusEnrolled,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	var fresh models.SkillApplicant
	if err := s.db.Where("id = ?", applicant.ID).First(&fresh).Error; err != nil {
		return nil, err
	}
	if res.RowsAffected == 1 && s.notifier != nil {
		s.notifier.SkillEnrolled(&fresh)
	}
	return &fresh, nil
}

// VerifyAcceptanceIdentity re-verifies an applicant by email and application
// number before the acceptance flow accepts any payment call. This is an
// authorization check, not a payment check.
func (s *Service) VerifyAcceptanceIdentity(email, applicationNumber string) (*models.Applicant, error) {
	var applicant models.Applicant
	err := s.db.Where("application_number = ? AND LOWER(email) = LOWER(?) AND is_deleted = false",
		applicationNumber, email).First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

// ConfirmAcceptancePayment reconciles the acceptance fee exactly once,
// targeting the acceptance triple. Same idempotency contract as
// ConfirmApplicationPayment; additionally the record must be ADMITTED.
func (s *Service) ConfirmAcceptancePayment(reference, numberHint string) (*models.Applicant, error) {
	if reference == "" {
		return nil, ErrRecordNotFound
	}

	applicant, err := s.resolveApplicant("acceptance_payment_reference", reference, numberHint)
	if err != nil {
		return nil, err
	}
	if applicant.AcceptanceFeePaid {
		return applicant, nil
	}
	if applicant.Status != models.ApplicantStatusAdmitted {
		return nil, ErrNotAdmitted
	}

	result, err := s.gateway.Verify(reference)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, ErrPaymentNotConfirmed
	}

	now := time.Now()
	res := s.db.Model(&models.Applicant{}).
		Where("id = ? AND acceptance_fee_paid = ?", applicant.ID, false).
		Updates(map[string]interface{}{
			"acceptance_fee_paid":          true,
			"acceptance_paid_at":           now,
			"acceptance_payment_reference": reference,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	fresh, err := s.findByNumber(applicant.ApplicationNumber)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 1 && s.notifier != nil {
		s.notifier.AcceptanceConfirmed(fresh)
	}
	return fresh, nil
}

// GetApplicationStatus is the applicant-facing status lookup by email and
// application number.
func (s *Service) GetApplicationStatus(email, applicationNumber string) (*models.Applicant, error) {
	return s.VerifyAcceptanceIdentity(email, applicationNumber)
}

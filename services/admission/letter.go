package admission

import (
	"strings"
	"time"
)

// Letter is the admission-letter payload handed to the rendering layer.
// It is computed per request and never stored; the issuance timestamp is
// regenerated on every call.
type Letter struct {
	ApplicationNumber string    `json:"applicationNumber"`
	FullName          string    `json:"fullName"`
	Programme         string    `json:"programme"`
	ModeOfStudy       string    `json:"modeOfStudy"`
	AdmissionSession  string    `json:"admissionSession"`
	IssuedAt          time.Time `json:"issuedAt"`

	AcceptancePaidAt           *time.Time `json:"acceptancePaidAt"`
	AcceptancePaymentReference string     `json:"acceptancePaymentReference"`
}

// IssueAdmissionLetter builds the letter for an applicant. It refuses with
// ErrAcceptanceRequired until the acceptance fee is confirmed paid.
func (s *Service) IssueAdmissionLetter(applicationNumber string) (*Letter, error) {
	applicant, err := s.findByNumber(applicationNumber)
	if err != nil {
		return nil, err
	}
	if !applicant.AcceptanceFeePaid {
		return nil, ErrAcceptanceRequired
	}

	parts := []string{applicant.FirstName, applicant.MiddleName, applicant.LastName}
	fullName := strings.Join(parts, " ")
	fullName = strings.Join(strings.Fields(fullName), " ") // collapse empty middle name

	return &Letter{
		ApplicationNumber:          applicant.ApplicationNumber,
		FullName:                   fullName,
		Programme:                  applicant.Programme,
		ModeOfStudy:                applicant.ModeOfStudy,
		AdmissionSession:           applicant.AdmissionSession,
		IssuedAt:                   time.Now(),
		AcceptancePaidAt:           applicant.AcceptancePaidAt,
		AcceptancePaymentReference: applicant.AcceptancePaymentReference,
	}, nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// ApplicantStatus defines the lifecycle state of a general admission applicant
type ApplicantStatus string

const (
	ApplicantStatusPending     ApplicantStatus = "PENDING"
	ApplicantStatusUnderReview ApplicantStatus = "UNDER_REVIEW"
	ApplicantStatusAdmitted    ApplicantStatus = "ADMITTED"
	ApplicantStatusRejected    ApplicantStatus = "REJECTED"
)

// Applicant is a general admission application record.
// Payment facts come in triples (paid flag, paid timestamp, gateway reference)
// that are always written together in a single update.
type Applicant struct {
	gorm.Model
	ApplicationNumber string `gorm:"uniqueIndex;not null" json:"applicationNumber"`

	FirstName     string `gorm:"not null" json:"firstName"`
	MiddleName    string `gorm:"default:''" json:"middleName"`
	LastName      string `gorm:"not null" json:"lastName"`
	Email         string `gorm:"index;not null" json:"email"`
	Mobile        string `gorm:"default:''" json:"mobile"`
	Gender        string `gorm:"default:''" json:"gender"`
	DateOfBirth   string `gorm:"default:''" json:"dateOfBirth"`
	Nationality   string `gorm:"default:''" json:"nationality"`
	StateOfOrigin string `gorm:"default:''" json:"stateOfOrigin"`
	Address       string `gorm:"type:text" json:"address"`

	Programme        string          `gorm:"not null" json:"programme"`
	ModeOfStudy      string          `gorm:"default:'FULL-TIME'" json:"modeOfStudy"`
	AdmissionSession string          `gorm:"not null" json:"admissionSession"`
	Status           ApplicantStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	// Uploaded document paths, stored as opaque strings
	PassportPhoto string `gorm:"default:''" json:"passportPhoto"`
	Credentials   string `gorm:"default:''" json:"credentials"`

	// Application fee facts
	ApplicationFeePaid bool       `gorm:"default:false" json:"applicationFeePaid"`
	ApplicationPaidAt  *time.Time `json:"applicationPaidAt"`
	PaymentReference   string     `gorm:"index;default:''" json:"paymentReference"`

	// Acceptance fee facts, only meaningful once Status is ADMITTED
	AcceptanceFeePaid          bool       `gorm:"default:false" json:"acceptanceFeePaid"`
	AcceptancePaidAt           *time.Time `json:"acceptancePaidAt"`
	AcceptancePaymentReference string     `gorm:"index;default:''" json:"acceptancePaymentReference"`

	AcceptanceReminderSent bool `gorm:"default:false" json:"acceptanceReminderSent"`
	IsDeleted              bool `gorm:"default:false" json:"isDeleted"`
}

func (Applicant) TableName() string {
	return "applicants"
}

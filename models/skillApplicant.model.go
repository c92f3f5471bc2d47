package models

import (
	"time"

	"gorm.io/gorm"
)

// SkillApplicantStatus defines the lifecycle state of a skills-training applicant
type SkillApplicantStatus string

const (
	SkillStatusAwaitingPayment SkillApplicantStatus = "AWAITING_PAYMENT"
	SkillStatusEnrolled        SkillApplicantStatus = "ENROLLED"
	SkillStatusExpired         SkillApplicantStatus = "EXPIRED"
	SkillStatusRejected        SkillApplicantStatus = "REJECTED"
)

// SkillApplicant is a skills-training application record. It shares the
// payment-triple representation with Applicant; confirming the application
// fee moves the record from AWAITING_PAYMENT to ENROLLED.
type SkillApplicant struct {
	gorm.Model
	ApplicationNumber string `gorm:"uniqueIndex;not null" json:"applicationNumber"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"index;not null" json:"email"`
	Mobile    string `gorm:"default:''" json:"mobile"`
	Gender    string `gorm:"default:''" json:"gender"`
	Address   string `gorm:"type:text" json:"address"`

	SkillProgramme   string               `gorm:"not null" json:"skillProgramme"`
	AdmissionSession string               `gorm:"not null" json:"admissionSession"`
	Status           SkillApplicantStatus `gorm:"type:varchar(20);default:'AWAITING_PAYMENT';index" json:"status"`

	ApplicationFeePaid bool       `gorm:"default:false" json:"applicationFeePaid"`
	ApplicationPaidAt  *time.Time `json:"applicationPaidAt"`
	PaymentReference   string     `gorm:"index;default:''" json:"paymentReference"`

	ReminderSent bool `gorm:"default:false" json:"reminderSent"`
	IsDeleted    bool `gorm:"default:false" json:"isDeleted"`
}

func (SkillApplicant) TableName() string {
	return "skill_applicants"
}

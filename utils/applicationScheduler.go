package utils

import (
	"log"
	"time"

	"acesped/database"
	"acesped/models"

	"github.com/robfig/cron/v3"
)

// send hooks, replaced in tests
var (
	sendPaymentReminder    = SendPaymentReminderEmail
	sendAcceptanceReminder = SendAcceptanceReminderEmail
)

// InitializeApplicationScheduler sets up the daily unpaid-application sweep
func InitializeApplicationScheduler() {
	log.Println("[APPLICATION-SCHEDULER] Initializing application scheduler...")

	c := cron.New()

	// Run daily at 8 AM
	c.AddFunc("0 8 * * *", func() {
		log.Println("[APPLICATION-SCHEDULER] Running daily unpaid application check...")
		RemindUnpaidApplications()
		ExpireStaleApplications()
		RemindUnpaidAcceptance()
	})

	c.Start()
	log.Println("[APPLICATION-SCHEDULER] Application scheduler started - runs daily at 8 AM")
}

// RemindUnpaidApplications mails skills applicants stuck in AWAITING_PAYMENT
// for more than 3 days, once per application.
func RemindUnpaidApplications() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -3)

	var pending []models.SkillApplicant
	if err := db.
		Where("status = ? AND reminder_sent = false AND is_deleted = false", models.SkillStatusAwaitingPayment).
		Where("created_at < ?", cutoff).
		Find(&pending).Error; err != nil {
		log.Printf("[APPLICATION-SCHEDULER] Error fetching unpaid applications: %v", err)
		return
	}

	log.Printf("[APPLICATION-SCHEDULER] Found %d unpaid applications needing a reminder", len(pending))

	for _, applicant := range pending {
		sendPaymentReminder(applicant.Email, applicant.FirstName, applicant.ApplicationNumber)

		if err := db.Model(&applicant).Update("reminder_sent", true).Error; err != nil {
			log.Printf("[APPLICATION-SCHEDULER] Error marking reminder for %s: %v", applicant.ApplicationNumber, err)
		}
	}
}

// RemindUnpaidAcceptance mails ADMITTED applicants whose acceptance fee is
// still unpaid 3 days after the admission decision, once per applicant.
func RemindUnpaidAcceptance() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -3)

	var pending []models.Applicant
	if err := db.
		Where("status = ? AND acceptance_fee_paid = false AND acceptance_reminder_sent = false AND is_deleted = false",
			models.ApplicantStatusAdmitted).
		Where("updated_at < ?", cutoff).
		Find(&pending).Error; err != nil {
		log.Printf("[APPLICATION-SCHEDULER] Error fetching unpaid acceptances: %v", err)
		return
	}

	log.Printf("[APPLICATION-SCHEDULER] Found %d admitted applicants with unpaid acceptance fees", len(pending))

	for _, applicant := range pending {
		sendAcceptanceReminder(applicant.Email, applicant.FirstName, applicant.ApplicationNumber)

		if err := db.Model(&applicant).Update("acceptance_reminder_sent", true).Error; err != nil {
			log.Printf("[APPLICATION-SCHEDULER] Error marking acceptance reminder for %s: %v", applicant.ApplicationNumber, err)
		}
	}
}

// ExpireStaleApplications marks skills applications unpaid for 30 days as EXPIRED
func ExpireStaleApplications() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -30)

	res := db.Model(&models.SkillApplicant{}).
		Where("status = ? AND is_deleted = false AND created_at < ?", models.SkillStatusAwaitingPayment, cutoff).
		Update("status", models.SkillStatusExpired)
	if res.Error != nil {
		log.Printf("[APPLICATION-SCHEDULER] Error expiring stale applications: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[APPLICATION-SCHEDULER] Expired %d stale applications", res.RowsAffected)
	}
}

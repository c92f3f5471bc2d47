package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"acesped/config"
	"acesped/models"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: ACE-SPED Admissions <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by every portal notification
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #004D26; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A1A; line-height: 1.6; }
			.content h2 { color: #004D26; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #D7B56D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ACE-SPED</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 ACE-SPED. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Application received
func SendApplicationReceivedEmail(email, name, applicationNumber string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your application has been received. Keep your application number safe; you will need it for every follow-up step.</p>
		<div class="info-box"><strong>Application Number:</strong> %s</div>
		<p>The next step is payment of the application fee from your applicant dashboard.</p>
	`, name, applicationNumber)
	SendEmail([]string{email}, "Application Received - ACE-SPED", getEmailTemplate("Application Received", body))
}

// 2. Application fee confirmed
func SendPaymentConfirmedEmail(email, name, applicationNumber, reference string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your application fee payment has been confirmed.</p>
		<div class="info-box">
			<strong>Application Number:</strong> %s<br>
			<strong>Payment Reference:</strong> %s
		</div>
		<p>Your application is now awaiting review by the admissions office.</p>
	`, name, applicationNumber, reference)
	SendEmail([]string{email}, "Payment Confirmed - ACE-SPED", getEmailTemplate("Payment Confirmed", body))
}

// 3. Acceptance fee confirmed
func SendAcceptanceConfirmedEmail(email, name, applicationNumber string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your acceptance fee has been confirmed. Congratulations on securing your admission!</p>
		<div class="info-box"><strong>Application Number:</strong> %s</div>
		<p>You can now download your admission letter from the portal.</p>
	`, name, applicationNumber)
	SendEmail([]string{email}, "Acceptance Confirmed - ACE-SPED", getEmailTemplate("Acceptance Confirmed", body))
}

// 4. Skills enrollment confirmed
func SendSkillEnrollmentEmail(email, name, programme string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment has been confirmed and you are now enrolled in <strong>%s</strong>.</p>
		<p>Programme schedules will be communicated to you by email.</p>
	`, name, programme)
	SendEmail([]string{email}, "Enrollment Confirmed - ACE-SPED", getEmailTemplate("Enrollment Confirmed", body))
}

// Admission decision (admin review outcome)
func SendAdmissionDecisionEmail(email, name, applicationNumber string, admitted bool) {
	if admitted {
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Congratulations! You have been offered provisional admission.</p>
			<div class="info-box"><strong>Application Number:</strong> %s</div>
			<p>Log in to the portal with your email and application number to pay your acceptance fee and download your admission letter.</p>
		`, name, applicationNumber)
		SendEmail([]string{email}, "Admission Offer - ACE-SPED", getEmailTemplate("Admission Offer", body))
		return
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We regret to inform you that your application <strong>%s</strong> was not successful this session.</p>
	`, name, applicationNumber)
	SendEmail([]string{email}, "Admission Decision - ACE-SPED", getEmailTemplate("Admission Decision", body))
}

// Password reset OTP
func SendOTPEmail(otp, email string) {
	body := fmt.Sprintf(`
		<p>Use the code below to reset your portal password. It expires in 10 minutes.</p>
		<div class="info-box"><strong>Code:</strong> %s</div>
		<p>If you did not request this, you can ignore this email.</p>
	`, otp)
	SendEmail([]string{email}, "Password Reset Code - ACE-SPED", getEmailTemplate("Password Reset", body))
}

// MailNotifier adapts the email triggers to the admission service's
// lifecycle events. Sends are fire-and-forget.
type MailNotifier struct{}

func (MailNotifier) ApplicationFeeConfirmed(applicant *models.Applicant) {
	go SendPaymentConfirmedEmail(applicant.Email, applicant.FirstName, applicant.ApplicationNumber, applicant.PaymentReference)
}

func (MailNotifier) SkillEnrolled(applicant *models.SkillApplicant) {
	go SendSkillEnrollmentEmail(applicant.Email, applicant.FirstName, applicant.SkillProgramme)
}

func (MailNotifier) AcceptanceConfirmed(applicant *models.Applicant) {
	go SendAcceptanceConfirmedEmail(applicant.Email, applicant.FirstName, applicant.ApplicationNumber)
}

// 5. Payment reminder (scheduler)
func SendPaymentReminderEmail(email, name, applicationNumber string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your application <strong>%s</strong> is still awaiting payment. Applications left unpaid for 30 days expire automatically.</p>
	`, name, applicationNumber)
	SendEmail([]string{email}, "Payment Reminder - ACE-SPED", getEmailTemplate("Payment Reminder", body))
}

// 6. Acceptance fee reminder (scheduler)
func SendAcceptanceReminderEmail(email, name, applicationNumber string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your admission offer for application <strong>%s</strong> is awaiting acceptance. Pay your acceptance fee on the portal to secure your place and download your admission letter.</p>
	`, name, applicationNumber)
	SendEmail([]string{email}, "Acceptance Fee Reminder - ACE-SPED", getEmailTemplate("Acceptance Fee Reminder", body))
}

package utils

import (
	"fmt"
	"log"

	"learnhub/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid
func SendEmail(to, subject, htmlBody string) error {
	if config.AppConfig.SendgridKey == "" {
		log.Printf("Email to %s skipped: SendGrid is not configured", to)
		return nil
	}

	from := mail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1D4ED8; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #111827; line-height: 1.6; }
			.content h2 { color: #111827; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #1D4ED8; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1D4ED8; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnHub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendApplicationApprovedEmail notifies a user that their course
// application was approved. Errors are logged, never propagated.
func SendApplicationApprovedEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Great news! Your application for <strong>%s</strong> has been approved
		and the course fee has been deducted from your token wallet.</p>
		<div class="info-box">You can now access the full course content from your dashboard.</div>
		<a class="btn" href="%s/courses">Go to my courses</a>
	`, name, courseTitle, config.AppConfig.AppBaseURL)

	if err := SendEmail(email, "Your course application was approved", getEmailTemplate("Application Approved", body)); err != nil {
		log.Printf("Failed to send approval email to %s: %v", email, err)
	}
}

// SendApplicationRejectedEmail notifies a user that their course
// application was rejected.
func SendApplicationRejectedEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Unfortunately your application for <strong>%s</strong> was not approved.</p>
		<p>No tokens were deducted from your wallet. If you believe this is a mistake,
		please get in touch with our support team.</p>
	`, name, courseTitle)

	if err := SendEmail(email, "Update on your course application", getEmailTemplate("Application Update", body)); err != nil {
		log.Printf("Failed to send rejection email to %s: %v", email, err)
	}
}

// SendTokensPurchasedEmail confirms a completed token purchase
func SendTokensPurchasedEmail(email, name string, tokens int64) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your payment was successful and <strong>%d tokens</strong> have been added to your wallet.</p>
		<a class="btn" href="%s/profile">View my wallet</a>
	`, name, tokens, config.AppConfig.AppBaseURL)

	if err := SendEmail(email, "Token purchase confirmed", getEmailTemplate("Purchase Confirmed", body)); err != nil {
		log.Printf("Failed to send purchase email to %s: %v", email, err)
	}
}

// SendReconciliationAlert emails the configured admin address about
// approved applications with no matching enrollment.
func SendReconciliationAlert(applicationIDs []uint) {
	if config.AppConfig.AdminEmail == "" {
		return
	}

	body := fmt.Sprintf(`
		<p>The nightly reconciliation run found <strong>%d</strong> approved
		application(s) without a matching enrollment: %v</p>
		<p>Tokens were already deducted for these applications. Manual follow-up is required.</p>
	`, len(applicationIDs), applicationIDs)

	if err := SendEmail(config.AppConfig.AdminEmail, "Enrollment reconciliation alert", getEmailTemplate("Reconciliation Alert", body)); err != nil {
		log.Printf("Failed to send reconciliation alert: %v", err)
	}
}

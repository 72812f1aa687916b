package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "FleetDesk Rentals"
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #1E6FD9; margin: 0;">FleetDesk</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 FleetDesk Rentals. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var message strings.Builder
	for key, value := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	message.WriteString("\r\n" + body)

	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	return smtp.SendMail(addr, auth, emailFrom, to, []byte(message.String()))
}

// SendEmailVerificationOTP sends the account verification code
func SendEmailVerificationOTP(email, otp string) error {
	subject := "Verify your FleetDesk account"
	body := emailHeader + fmt.Sprintf(`
		<h3>Welcome to FleetDesk!</h3>
		<p>Use the code below to verify your email address:</p>
		<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px; text-align: center;">%s</p>
		<p>The code expires in 15 minutes.</p>
	`, otp) + emailFooter

	return sendEmail([]string{email}, subject, body)
}

// SendPasswordResetEmail sends the password reset code
func SendPasswordResetEmail(email, otp string) error {
	subject := "FleetDesk password reset"
	body := emailHeader + fmt.Sprintf(`
		<h3>Password Reset Requested</h3>
		<p>Use the code below to reset your password:</p>
		<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px; text-align: center;">%s</p>
		<p>If you did not request this, you can ignore this email.</p>
	`, otp) + emailFooter

	return sendEmail([]string{email}, subject, body)
}

// SendApprovalRequestEmail notifies an approver about a pending price override.
func SendApprovalRequestEmail(email string, rentalID uint, pendingTotal float64) error {
	subject := "Price override pending approval"
	body := emailHeader + fmt.Sprintf(`
		<h3>Price Override Requested</h3>
		<p>Rental #%d has a manually entered price awaiting review.</p>
		<p>Requested total: <strong>%.2f</strong></p>
		<p>Open the dashboard to approve or reject the override.</p>
	`, rentalID, pendingTotal) + emailFooter

	return sendEmail([]string{email}, subject, body)
}

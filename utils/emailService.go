package utils

import (
	"eduapi/config"
	"fmt"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML mail through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Edu Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// SendOrderPaidEmail mails a payment receipt for a settled order
func SendOrderPaidEmail(email, orderNo string, totalFee int64) error {
	subject := "Payment received for your course order"
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
			<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
				<h2 style="color: #333333; text-align: center;">Payment Successful</h2>
				<p style="font-size: 16px; color: #555555;">Your order <b>%s</b> has been paid.</p>
				<p style="font-size: 16px; color: #555555;">Amount: <b>%.2f</b></p>
				<p style="font-size: 14px; color: #999999;">You can now access the course from your account.</p>
			</div>
		</body>
	</html>`, orderNo, float64(totalFee)/100)

	return SendEmail([]string{email}, subject, body)
}

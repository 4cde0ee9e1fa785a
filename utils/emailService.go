package utils

import (
	"bolt/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// smtpSendMail is swappable in tests
var smtpSendMail = smtp.SendMail

// SendEmail delivers a plain-text email through the configured
// provider (SMTP by default, SendGrid when EMAIL_PROVIDER=sendgrid).
func SendEmail(to []string, subject, body string) error {
	if config.AppConfig.EmailProvider == "sendgrid" {
		return sendViaSendGrid(to, subject, body)
	}
	return sendViaSMTP(to, subject, body)
}

func sendViaSMTP(to []string, subject, body string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := fmt.Sprintf("From: Backend Bolt <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += body

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtpSendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func sendViaSendGrid(to []string, subject, body string) error {
	from := mail.NewEmail("Backend Bolt", config.AppConfig.EmailSender)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), body, "")
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via sendgrid: %v", err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid rejected email: %d", resp.StatusCode)
		}
	}
	return nil
}

// SendOTPEmail sends the password-reset code to the user.
func SendOTPEmail(username, email, otp string) error {
	subject := "Your OTP for Password Reset"
	body := fmt.Sprintf(`Hi %s,

We received a request to reset your password for your account associated with this email.

Your One-Time Password (OTP) is:

    %s

Please enter this OTP in the password reset page to proceed. This OTP is valid for the next %d minutes.

If you did not request a password reset, please ignore this email or contact support.

Thank you,
Backend Bolt Team
`, username, otp, config.AppConfig.OTPTTLMin)

	return SendEmail([]string{email}, subject, body)
}

// SendOrderStatusEmail notifies the user that an order changed status.
func SendOrderStatusEmail(orderID, username, status, email string) error {
	subject := fmt.Sprintf("Your order %s status has changed", orderID)
	body := fmt.Sprintf("Hi %s,\n\nYour order status is now: %s\n", username, status)

	if err := SendEmail([]string{email}, subject, body); err != nil {
		log.Printf("Failed to send order status email to %s for order %s: %v", email, orderID, err)
		return err
	}
	log.Printf("Order status email sent to %s for order %s", email, orderID)
	return nil
}

package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendRegistrationEmail confirms a rescue team registration. Returns nil
// without sending when mail credentials are not configured.
func SendRegistrationEmail(toEmail, teamName string) error {
	from := os.Getenv("EMAIL_FROM")
	pass := os.Getenv("EMAIL_PASS")
	if from == "" || pass == "" {
		return nil
	}

	msg := fmt.Sprintf(`Subject: RescueHub - Registration Received

Dear %s,

Your rescue team registration has been received. You can now log in and
check your assignments on the rescue dashboard.

Thank you,
RescueHub Team
`, teamName)

	return smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", from, pass, "smtp.gmail.com"),
		from,
		[]string{toEmail},
		[]byte(msg),
	)
}

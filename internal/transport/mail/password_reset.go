package mail

import (
	"context"
	"fmt"
)

// SendPasswordReset emails the reset link. The link expires after one hour;
// that window lives in the auth service, the wording here just states it.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, firstName, resetURL string) error {
	subject := "Reset Your Password - NYC Bookings"
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received a request to reset your password for your NYC Bookings account.\n\n"+
			"Open the following link to choose a new password:\n\n%s\n\n"+
			"This link will expire in 1 hour for security reasons.\n\n"+
			"If you didn't request this password reset, you can safely ignore this email.\n\n"+
			"NYC Bookings - Your trusted vacation rental platform",
		firstName, resetURL,
	)
	return m.send(ctx, email, subject, body)
}

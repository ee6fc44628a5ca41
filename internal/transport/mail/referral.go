package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/nycbookings/api/internal/domain"
)

// ReferralNotifier wraps the SMTP mailer with the fixed recipient address for
// guest-referral notifications.
type ReferralNotifier struct {
	mailer *SMTPMailer
	to     string
}

func NewReferralNotifier(mailer *SMTPMailer, to string) *ReferralNotifier {
	return &ReferralNotifier{mailer: mailer, to: to}
}

func (n *ReferralNotifier) SendReferralNotification(ctx context.Context, referral *domain.Referral) error {
	if n == nil || n.to == "" {
		return errors.New("referral notification recipient not configured")
	}

	subject := "Guest Referral"
	body := fmt.Sprintf(
		"You've received a new guest referral.\n\n"+
			"Name: %s\n"+
			"Travel Agency: %s\n"+
			"Phone: %s\n"+
			"Email: %s\n\n"+
			"Message:\n%s\n",
		referral.Name, referral.AgencyName, referral.Phone, referral.Email, referral.Message,
	)
	return n.mailer.send(ctx, n.to, subject, body)
}

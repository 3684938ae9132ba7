package services

import (
	"fmt"
	"strings"

	"checkout-backend/internal/checkout"
	"checkout-backend/internal/domain"
	"checkout-backend/internal/utils"
)

// NotifyService formats the confirmation message the WhatsApp/email
// dispatcher sends after a successful booking. Dispatching itself happens
// outside this backend.
type NotifyService struct {
	RequestID string
}

func (s NotifyService) ConfirmationMessage(sess *checkout.Session) (string, error) {
	conf := sess.Confirmation()
	if conf == nil {
		return "", domain.ValidationError{Msg: "booking not confirmed yet"}
	}

	var b strings.Builder
	b.WriteString("Your booking is confirmed!\n")
	b.WriteString(fmt.Sprintf("Confirmation: %s\n", conf.ConfirmationNumber))
	b.WriteString(fmt.Sprintf("Booked on: %s\n\n", conf.BookingDate))

	for i, m := range sess.AllMetadata() {
		b.WriteString(fmt.Sprintf("%d) %s", i+1, m.Title))
		if m.Date != "" {
			b.WriteString(" on " + m.Date)
		}
		b.WriteString(fmt.Sprintf(" (%d pax)\n", m.TotalRequired))
	}

	b.WriteString(fmt.Sprintf("\nTotal paid: %s\n", utils.FormatINR(sess.TotalPrice())))
	b.WriteString("Keep this message handy at boarding and check-in.")

	utils.LogEvent(s.RequestID, "notify", "format_confirmation", "confirmation="+conf.ConfirmationNumber)
	return b.String(), nil
}

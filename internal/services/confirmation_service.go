package services

import (
	"checkout-backend/internal/checkout"
	"checkout-backend/internal/repositories"
	"checkout-backend/internal/utils"
)

// ConfirmationService persists confirmed bookings and resolves them for the
// notification subsystem.
type ConfirmationService struct {
	Repo      repositories.ConfirmationRepo
	RequestID string
}

// Record stores the confirmation produced by a successful payment callback.
func (s ConfirmationService) Record(sessionID string, conf checkout.BookingConfirmation, bookingType string, totalPrice float64) error {
	utils.LogEvent(s.RequestID, "confirmation", "record", "confirmation="+conf.ConfirmationNumber)
	return s.Repo.Insert(repositories.ConfirmationRecord{
		SessionID:          sessionID,
		BookingID:          conf.BookingID,
		ConfirmationNumber: conf.ConfirmationNumber,
		BookingDate:        conf.BookingDate,
		Status:             conf.Status,
		PaymentStatus:      conf.PaymentStatus,
		BookingType:        bookingType,
		TotalPrice:         totalPrice,
	})
}

func (s ConfirmationService) Lookup(confirmationNumber string) (repositories.ConfirmationRecord, error) {
	return s.Repo.GetByNumber(confirmationNumber)
}

func (s ConfirmationService) History(sessionID string) ([]repositories.ConfirmationRecord, error) {
	return s.Repo.ListBySession(sessionID)
}

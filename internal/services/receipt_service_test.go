package services

import (
	"strings"
	"testing"

	"checkout-backend/internal/checkout"
	"checkout-backend/internal/domain"
)

func TestReceiptServiceGenerate(t *testing.T) {
	loader := func(string) (receiptData, error) {
		return receiptData{
			SessionID:          "cs-1",
			ConfirmationNumber: "TRV-20260910-001234",
			BookingID:          "BKG-9",
			BookingDate:        "2026-09-10 12:00:00",
			PrimaryName:        "Asha",
			PrimaryWhatsapp:    "+91 98000 00000",
			PrimaryEmail:       "asha@example.com",
			MemberCount:        3,
			TotalPrice:         4300,
			Lines: []receiptLine{
				{Title: "Scuba", Date: "2026-09-10", Location: "Havelock", Headcount: 3, Amount: 2500},
				{Title: "Green Ocean", Date: "2026-09-11", Location: "Port Blair - Havelock", Headcount: 3, Amount: 1800},
			},
		}, nil
	}

	svc := ReceiptService{Loader: loader}
	pdf, filename, err := svc.GenerateReceipt(nil)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateReceipt returned empty data")
	}
	if filename != "RECEIPT_TRV-20260910-001234.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestReceiptRequiresConfirmedSession(t *testing.T) {
	sess := checkout.NewSession("cs-1")
	sess.InitFromActivityCart([]checkout.ActivityBooking{{
		Activity:     checkout.Activity{Title: "Scuba", BasePrice: 1000},
		SearchParams: checkout.ActivitySearchParams{Adults: 1},
		Quantity:     1,
	}})

	svc := ReceiptService{}
	if _, _, err := svc.GenerateReceipt(sess); !domain.IsValidation(err) {
		t.Fatalf("expected validation error before confirmation, got %v", err)
	}
}

func TestNotifyConfirmationMessage(t *testing.T) {
	sess := confirmedSession(t)

	svc := NotifyService{}
	msg, err := svc.ConfirmationMessage(sess)
	if err != nil {
		t.Fatalf("ConfirmationMessage returned error: %v", err)
	}
	if !strings.Contains(msg, "Confirmation:") {
		t.Fatalf("message missing confirmation number: %q", msg)
	}
	if !strings.Contains(msg, "Scuba") {
		t.Fatalf("message missing item title: %q", msg)
	}
	if !strings.Contains(msg, "Total paid:") {
		t.Fatalf("message missing total: %q", msg)
	}
}

func TestNotifyRequiresConfirmation(t *testing.T) {
	sess := checkout.NewSession("cs-1")
	svc := NotifyService{}
	if _, err := svc.ConfirmationMessage(sess); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func confirmedSession(t *testing.T) *checkout.Session {
	t.Helper()
	sess := checkout.NewSession("cs-1")
	sess.InitFromActivityCart([]checkout.ActivityBooking{{
		Activity:     checkout.Activity{Title: "Scuba", BasePrice: 1000},
		SearchParams: checkout.ActivitySearchParams{Adults: 2, Children: 1},
		Quantity:     1,
		TotalPrice:   2500,
	}})
	sess.UpdateFormData(sess.FormDefaults())

	_, resolver, err := sess.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := resolver.Succeed(checkout.PaymentResult{PaymentID: "pay-1"}); err != nil {
		t.Fatalf("succeed failed: %v", err)
	}
	return sess
}

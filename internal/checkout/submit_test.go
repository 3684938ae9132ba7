package checkout

import (
	"strings"
	"testing"

	"checkout-backend/internal/domain"
)

func TestSubmitRequiresFormData(t *testing.T) {
	sess := NewSession("s")
	sess.InitFromActivityCart([]ActivityBooking{sampleActivity("Scuba", 2, 1)})

	_, resolver, err := sess.Submit()
	if err == nil {
		t.Fatalf("expected error without committed form data")
	}
	if err.Error() != "no form data to submit" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %T", err)
	}
	if resolver != nil {
		t.Fatalf("no continuation may be registered on failure")
	}
}

func TestSubmitFailsFastOnUnderAssignment(t *testing.T) {
	sess := NewSession("s")
	sess.InitFromActivityCart([]ActivityBooking{sampleActivity("Scuba", 2, 1)})

	form := sess.FormDefaults()
	form.Members[2].SelectedActivities = nil
	sess.UpdateFormData(form)

	_, resolver, err := sess.Submit()
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	want := "validation failed: Scuba needs 1 more passengers"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
	if resolver != nil {
		t.Fatalf("no payment hook may be registered before validation passes")
	}
	if sess.Loading() {
		t.Fatalf("failed submit must not flag loading")
	}
}

func TestSubmitAssemblesPayload(t *testing.T) {
	sess := NewSession("s")
	act := sampleActivity("Scuba", 2, 1)
	act.TotalPrice = 2500
	fer := sampleFerry("Green Ocean", 1, 0, 0)
	fer.TotalPrice = 1800
	sess.InitFromMixed([]ActivityBooking{act}, []FerryBooking{fer})

	form := sess.FormDefaults()
	form.TermsAccepted = true
	sess.UpdateFormData(form)

	payload, resolver, err := sess.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resolver == nil {
		t.Fatalf("expected continuation")
	}
	if payload.BookingType != "mixed" || !payload.HasActivities || !payload.HasFerries {
		t.Fatalf("unexpected booking typing: %+v", payload)
	}
	if payload.TotalPrice != 4300 {
		t.Fatalf("expected payload total 4300, got %v", payload.TotalPrice)
	}
	if !payload.TermsAccepted {
		t.Fatalf("terms flag lost")
	}
	if len(payload.Members) != len(form.Members) {
		t.Fatalf("payload must carry the committed roster")
	}
	if !sess.Loading() {
		t.Fatalf("submit flags loading until settlement")
	}
}

func TestSuccessCallbackBuildsConfirmation(t *testing.T) {
	sess := NewSession("s")
	sess.InitFromActivityCart([]ActivityBooking{sampleActivity("Scuba", 2, 1)})
	sess.UpdateFormData(sess.FormDefaults())

	_, resolver, err := sess.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	conf, err := resolver.Succeed(PaymentResult{PaymentID: "pay-42", Method: "upi"})
	if err != nil {
		t.Fatalf("succeed failed: %v", err)
	}
	if conf.Status != "confirmed" || conf.PaymentStatus != "paid" {
		t.Fatalf("unexpected confirmation %+v", conf)
	}
	if conf.BookingID != "BKG-pay-42" {
		t.Fatalf("booking id should derive from payment id, got %q", conf.BookingID)
	}
	if !strings.HasPrefix(conf.ConfirmationNumber, "TRV-") {
		t.Fatalf("unexpected confirmation number %q", conf.ConfirmationNumber)
	}
	if sess.Step() != 3 {
		t.Fatalf("success advances to step 3, got %d", sess.Step())
	}
	if sess.Loading() || sess.LastError() != "" {
		t.Fatalf("post-booking reset must clear loading and error")
	}
	if got := sess.Confirmation(); got == nil || *got != conf {
		t.Fatalf("confirmation not stored on session")
	}
}

func TestPaymentContinuationSingleFire(t *testing.T) {
	sess := NewSession("s")
	sess.InitFromActivityCart([]ActivityBooking{sampleActivity("Scuba", 1, 0)})
	sess.UpdateFormData(sess.FormDefaults())

	_, resolver, err := sess.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := resolver.Succeed(PaymentResult{}); err != nil {
		t.Fatalf("first settlement failed: %v", err)
	}
	if err := resolver.Fail("late error"); !domain.IsConflict(err) {
		t.Fatalf("second settlement must conflict, got %v", err)
	}
	if err := resolver.Cancel(); !domain.IsConflict(err) {
		t.Fatalf("third settlement must conflict, got %v", err)
	}
	if sess.LastError() != "" {
		t.Fatalf("late callbacks must not mutate the session")
	}
}

func TestFailureCallbackKeepsWizardUsable(t *testing.T) {
	sess := NewSession("s")
	sess.InitFromActivityCart([]ActivityBooking{sampleActivity("Scuba", 1, 0)})
	sess.UpdateFormData(sess.FormDefaults())
	sess.SetStep(2)

	_, resolver, err := sess.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := resolver.Fail("card declined"); err != nil {
		t.Fatalf("fail returned error: %v", err)
	}

	if sess.LastError() != "card declined" {
		t.Fatalf("gateway error not surfaced, got %q", sess.LastError())
	}
	if sess.Step() != 2 {
		t.Fatalf("failure must not change the step, got %d", sess.Step())
	}
	if sess.Confirmation() != nil {
		t.Fatalf("no confirmation on failure")
	}
	if sess.Loading() {
		t.Fatalf("loading cleared on settlement")
	}
}

func TestCancelCallbackNonFatal(t *testing.T) {
	sess := NewSession("s")
	sess.InitFromActivityCart([]ActivityBooking{sampleActivity("Scuba", 1, 0)})
	sess.UpdateFormData(sess.FormDefaults())

	_, resolver, err := sess.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := resolver.Cancel(); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if sess.LastError() != "payment cancelled" {
		t.Fatalf("cancel message missing, got %q", sess.LastError())
	}

	// a new submission is possible after cancel
	if _, _, err := sess.Submit(); err != nil {
		t.Fatalf("resubmit after cancel failed: %v", err)
	}
}

func TestSettleProxiesRequirePendingSubmission(t *testing.T) {
	sess := NewSession("s")
	sess.InitFromActivityCart([]ActivityBooking{sampleActivity("Scuba", 1, 0)})

	if _, err := sess.SettleSuccess(PaymentResult{}); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found without pending submission, got %v", err)
	}
	if err := sess.SettleFailure("x"); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if err := sess.SettleCancel(); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

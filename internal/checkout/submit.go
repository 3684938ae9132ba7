package checkout

import (
	"fmt"
	"strings"
	"sync"

	"checkout-backend/internal/domain"
	"checkout-backend/internal/utils"
)

// PaymentResult is what the payment integration reports on success.
type PaymentResult struct {
	PaymentID string `json:"payment_id"`
	Method    string `json:"method"`
}

// PaymentResolver is the single-fire continuation handed out by Submit. The
// payment integration settles it exactly once with Succeed, Fail, or Cancel;
// later calls are rejected instead of mutating the session again.
type PaymentResolver struct {
	mu      sync.Mutex
	settled bool
	session *Session
}

// Submit validates the committed form snapshot against the current business
// data and assembles the outbound payload. It performs no payment call
// itself: the caller hands the payload to the gateway and settles the
// returned resolver when the gateway reports back. Every validation failure
// is detected here, before any payment work starts.
func (s *Session) Submit() (Payload, *PaymentResolver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return Payload{}, nil, domain.ValidationError{Msg: "no form data to submit"}
	}

	result := s.validateLocked(s.form.Members)
	if !result.Valid {
		return Payload{}, nil, domain.ValidationError{
			Msg: "validation failed: " + strings.Join(result.Errors, "; "),
		}
	}

	payload := Payload{
		Activities:    append([]ActivityBooking(nil), s.activities...),
		Ferries:       append([]FerryBooking(nil), s.ferries...),
		Members:       copyMembers(s.form.Members),
		TermsAccepted: s.form.TermsAccepted,
		TotalPrice:    GrandTotal(s.activities, s.ferries),
		BookingType:   bookingType(len(s.activities) > 0, len(s.ferries) > 0),
		HasActivities: len(s.activities) > 0,
		HasFerries:    len(s.ferries) > 0,
	}

	resolver := &PaymentResolver{session: s}
	s.pending = resolver
	s.loading = true
	s.lastErr = ""
	return payload, resolver, nil
}

// Succeed records the confirmation, pins the wizard to the confirmation view,
// and runs the bounded post-booking reset.
func (r *PaymentResolver) Succeed(res PaymentResult) (BookingConfirmation, error) {
	if err := r.settle(); err != nil {
		return BookingConfirmation{}, err
	}

	s := r.session
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	conf := BookingConfirmation{
		BookingID:          fmt.Sprintf("BKG-%d", now.UnixNano()),
		ConfirmationNumber: fmt.Sprintf("TRV-%s-%06d", now.Format("20060102"), now.UnixNano()%1000000),
		BookingDate:        utils.FormatDateTime(now),
		Status:             "confirmed",
		PaymentStatus:      "paid",
	}
	if res.PaymentID != "" {
		conf.BookingID = "BKG-" + res.PaymentID
	}

	s.confirmation = &conf
	s.pending = nil
	s.resetAfterBookingLocked()
	return conf, nil
}

// Fail stores the gateway error on the session. The wizard step is left
// untouched so the user can retry from where they were.
func (r *PaymentResolver) Fail(msg string) error {
	if err := r.settle(); err != nil {
		return err
	}

	s := r.session
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(msg) == "" {
		msg = "payment failed"
	}
	s.lastErr = msg
	s.loading = false
	s.pending = nil
	return nil
}

// Cancel is a distinct terminal signal from the gateway; non-fatal, the
// wizard remains usable.
func (r *PaymentResolver) Cancel() error {
	if err := r.settle(); err != nil {
		return err
	}

	s := r.session
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = "payment cancelled"
	s.loading = false
	s.pending = nil
	return nil
}

func (r *PaymentResolver) settle() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settled {
		return domain.ConflictError{Resource: "payment", Msg: "already settled"}
	}
	r.settled = true
	return nil
}

// SettleSuccess proxies to the pending resolver from a detached caller such
// as a gateway callback endpoint.
func (s *Session) SettleSuccess(res PaymentResult) (BookingConfirmation, error) {
	r, err := s.pendingResolver()
	if err != nil {
		return BookingConfirmation{}, err
	}
	return r.Succeed(res)
}

func (s *Session) SettleFailure(msg string) error {
	r, err := s.pendingResolver()
	if err != nil {
		return err
	}
	return r.Fail(msg)
}

func (s *Session) SettleCancel() error {
	r, err := s.pendingResolver()
	if err != nil {
		return err
	}
	return r.Cancel()
}

func (s *Session) pendingResolver() (*PaymentResolver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, domain.NotFoundError{Resource: "pending payment"}
	}
	return s.pending, nil
}

func bookingType(hasActivities, hasFerries bool) string {
	switch {
	case hasActivities && hasFerries:
		return "mixed"
	case hasFerries:
		return "ferry"
	default:
		return "activity"
	}
}

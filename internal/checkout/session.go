package checkout

import (
	"sync"
	"time"
)

// Wizard steps. Step 3 doubles as the confirmation view after a successful
// payment callback.
const (
	StepDetails = 1
	StepReview  = 2
	StepPayment = 3
)

// Session is one checkout in progress. Business data (items + metadata) is
// replaced wholesale on cart changes; the form snapshot is the only
// user-editable state and is invalidated whenever business data is replaced.
// All methods are safe for concurrent use; there is one logical writer (the
// request handling the user's action) behind the mutex.
type Session struct {
	mu sync.Mutex

	id string

	activities   []ActivityBooking
	ferries      []FerryBooking
	activityMeta []ItemMetadata
	ferryMeta    []ItemMetadata

	form         *CheckoutFormData
	step         int
	confirmation *BookingConfirmation
	lastErr      string
	loading      bool

	pending *PaymentResolver

	now func() time.Time
}

func NewSession(id string) *Session {
	return &Session{
		id:   id,
		step: StepDetails,
		now:  time.Now,
	}
}

func (s *Session) ID() string { return s.id }

// InitFromActivityCart replaces business data with an activity-only cart.
// Idempotent: identical input yields identical state. The existing
// confirmation, if any, is preserved (only CompleteReset clears it).
func (s *Session) InitFromActivityCart(items []ActivityBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceBusinessData(append([]ActivityBooking(nil), items...), nil)
	s.step = StepDetails
	s.lastErr = ""
	s.loading = false
}

// InitFromFerryBooking replaces business data with a single ferry booking.
func (s *Session) InitFromFerryBooking(booking FerryBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceBusinessData(nil, []FerryBooking{booking})
	s.step = StepDetails
	s.lastErr = ""
	s.loading = false
}

// InitFromMixed replaces business data with both collections at once.
func (s *Session) InitFromMixed(activities []ActivityBooking, ferries []FerryBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceBusinessData(
		append([]ActivityBooking(nil), activities...),
		append([]FerryBooking(nil), ferries...),
	)
	s.step = StepDetails
	s.lastErr = ""
	s.loading = false
}

// UpdateActivityCart syncs an in-progress checkout with the external cart.
// The wizard step is preserved, but the form snapshot is invalidated so
// defaults are re-derived against the new requirement.
func (s *Session) UpdateActivityCart(items []ActivityBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceBusinessData(append([]ActivityBooking(nil), items...), s.ferries)
}

// replaceBusinessData swaps both collections, recomputes metadata, and drops
// the form snapshot. Callers hold the lock.
func (s *Session) replaceBusinessData(activities []ActivityBooking, ferries []FerryBooking) {
	s.activities = activities
	s.ferries = ferries
	s.activityMeta = ActivityItemMetadata(activities)
	s.ferryMeta = FerryItemMetadata(ferries)
	s.form = nil
}

// FormDefaults returns the persisted snapshot when one exists, otherwise a
// fresh default roster. It never mutates session state: until UpdateFormData
// commits a snapshot, every call re-derives defaults from business data.
func (s *Session) FormDefaults() CheckoutFormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form != nil {
		return copyFormData(*s.form)
	}
	meta := s.allMetadataLocked()
	return CheckoutFormData{Members: DefaultRoster(meta)}
}

// UpdateFormData is the only write path for members and terms acceptance.
// It stores a full-replacement snapshot, not a patch.
func (s *Session) UpdateFormData(data CheckoutFormData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := copyFormData(data)
	s.form = &snap
}

// HasFormData reports whether a snapshot has been committed.
func (s *Session) HasFormData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form != nil
}

// NextStep advances the wizard, stopping at the payment step.
func (s *Session) NextStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step < StepPayment {
		s.step++
	}
	return s.step
}

// PrevStep moves back, stopping at the details step.
func (s *Session) PrevStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepDetails {
		s.step--
	}
	return s.step
}

// SetStep jumps to a step, clamped to the valid range.
func (s *Session) SetStep(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = clampStep(n)
	return s.step
}

func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func clampStep(n int) int {
	if n < StepDetails {
		return StepDetails
	}
	if n > StepPayment {
		return StepPayment
	}
	return n
}

// Selectors. All return copies so callers cannot reach into session state.

func (s *Session) Activities() []ActivityBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ActivityBooking(nil), s.activities...)
}

func (s *Session) Ferries() []FerryBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FerryBooking(nil), s.ferries...)
}

// Items returns the concatenated tagged-union view, activities first, in the
// same order metadata indices reference.
func (s *Session) Items() []CheckoutItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CheckoutItem, 0, len(s.activities)+len(s.ferries))
	for _, a := range s.activities {
		out = append(out, NewActivityItem(a))
	}
	for _, f := range s.ferries {
		out = append(out, NewFerryItem(f))
	}
	return out
}

func (s *Session) ActivityMetadata() []ItemMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ItemMetadata(nil), s.activityMeta...)
}

func (s *Session) FerryMetadata() []ItemMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ItemMetadata(nil), s.ferryMeta...)
}

func (s *Session) AllMetadata() []ItemMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allMetadataLocked()
}

func (s *Session) allMetadataLocked() []ItemMetadata {
	out := make([]ItemMetadata, 0, len(s.activityMeta)+len(s.ferryMeta))
	out = append(out, s.activityMeta...)
	out = append(out, s.ferryMeta...)
	return out
}

func (s *Session) MinimumMembersNeeded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MinimumMembersNeeded(s.allMetadataLocked())
}

func (s *Session) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return GrandTotal(s.activities, s.ferries)
}

func (s *Session) Confirmation() *BookingConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmation == nil {
		return nil
	}
	c := *s.confirmation
	return &c
}

func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ValidateAssignments runs both validators against the committed snapshot (or
// fresh defaults when none exists) and merges their error sets.
func (s *Session) ValidateAssignments() AssignmentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := s.membersLocked()
	return s.validateLocked(members)
}

func (s *Session) validateLocked(members []MemberDetails) AssignmentResult {
	act := ValidateActivityAssignments(members, s.activityMeta)
	fer := ValidateFerryAssignments(members, len(s.activityMeta), s.ferryMeta)
	errs := append(append([]string{}, act.Errors...), fer.Errors...)
	return AssignmentResult{Valid: len(errs) == 0, Errors: errs}
}

func (s *Session) membersLocked() []MemberDetails {
	if s.form != nil {
		return copyMembers(s.form.Members)
	}
	return DefaultRoster(s.allMetadataLocked())
}

// ResetAfterBooking is the bounded post-payment reset: confirmation, form
// snapshot, and business data survive so the confirmation screen can still
// render booking details. The step is pinned to the payment/confirmation view.
func (s *Session) ResetAfterBooking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetAfterBookingLocked()
}

func (s *Session) resetAfterBookingLocked() {
	s.loading = false
	s.lastErr = ""
	s.step = StepPayment
}

// CompleteReset restores a pristine session for a new booking. This is the
// only operation that clears the confirmation.
func (s *Session) CompleteReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = nil
	s.ferries = nil
	s.activityMeta = nil
	s.ferryMeta = nil
	s.form = nil
	s.step = StepDetails
	s.confirmation = nil
	s.lastErr = ""
	s.loading = false
	s.pending = nil
}

func copyFormData(d CheckoutFormData) CheckoutFormData {
	return CheckoutFormData{
		Members:       copyMembers(d.Members),
		TermsAccepted: d.TermsAccepted,
	}
}

func copyMembers(members []MemberDetails) []MemberDetails {
	out := make([]MemberDetails, len(members))
	for i, m := range members {
		m.SelectedActivities = append([]int(nil), m.SelectedActivities...)
		out[i] = m
	}
	return out
}

package checkout

// ItemType tags a checkout item as exactly one kind of purchase.
type ItemType string

const (
	ItemActivity ItemType = "activity"
	ItemFerry    ItemType = "ferry"
)

// Activity is the external activity entity as delivered by the
// activity-selection subsystem. It arrives already priced.
type Activity struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Location  string           `json:"location"`
	BasePrice float64          `json:"base_price"`
	Options   []ActivityOption `json:"options,omitempty"`
}

// ActivityOption is a priced variant of an activity (e.g., private boat,
// sunset slot). When selected its price replaces the base price.
type ActivityOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ActivitySearchParams carries the party composition and slot the user
// searched with. Infants are not part of activity headcount.
type ActivitySearchParams struct {
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Time     string `json:"time"`
}

// ActivityBooking is one activity cart entry.
type ActivityBooking struct {
	ID               string               `json:"id"`
	Activity         Activity             `json:"activity"`
	SearchParams     ActivitySearchParams `json:"search_params"`
	Quantity         int                  `json:"quantity"`
	TotalPrice       float64              `json:"total_price"`
	ActivityOptionID string               `json:"activity_option_id,omitempty"`
}

// Ferry is the external ferry entity from the ferry-selection subsystem.
type Ferry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// FerryPassengers is the party composition of a ferry booking.
type FerryPassengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// FerryBooking is one ferry entry. It is priced upstream; the engine sums
// its total but never recomputes it.
type FerryBooking struct {
	ID            string          `json:"id"`
	Ferry         Ferry           `json:"ferry"`
	SelectedClass string          `json:"selected_class"`
	SelectedSeats []string        `json:"selected_seats"`
	Passengers    FerryPassengers `json:"passengers"`
	TotalPrice    float64         `json:"total_price"`
	BookingDate   string          `json:"booking_date"`
}

// CheckoutItem is a tagged union: exactly one of Activity or Ferry is set.
// Build through NewActivityItem / NewFerryItem so the invariant holds.
type CheckoutItem struct {
	Type     ItemType         `json:"type"`
	Activity *ActivityBooking `json:"activity,omitempty"`
	Ferry    *FerryBooking    `json:"ferry,omitempty"`
}

func NewActivityItem(b ActivityBooking) CheckoutItem {
	return CheckoutItem{Type: ItemActivity, Activity: &b}
}

func NewFerryItem(b FerryBooking) CheckoutItem {
	return CheckoutItem{Type: ItemFerry, Ferry: &b}
}

// ItemMetadata is the derived, read-only requirement summary of one checkout
// item. Activity entries count adults+children; ferry entries count infants
// too. Entries are addressed by position in the concatenated
// [activities..., ferries...] order, which member assignments reference.
type ItemMetadata struct {
	Type          ItemType `json:"type"`
	Title         string   `json:"title"`
	TotalRequired int      `json:"total_required"`
	Adults        int      `json:"adults"`
	Children      int      `json:"children"`
	Infants       int      `json:"infants"`
	Date          string   `json:"date"`
	Location      string   `json:"location"`
}

// MemberDetails is one passenger record. Exactly one member per roster has
// IsPrimary set; only the primary carries contact fields. SelectedActivities
// holds indices into the concatenated metadata order.
type MemberDetails struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	Age                int    `json:"age"`
	Gender             string `json:"gender"`
	Nationality        string `json:"nationality"`
	PassportNumber     string `json:"passport_number"`
	WhatsappNumber     string `json:"whatsapp_number,omitempty"`
	Email              string `json:"email,omitempty"`
	IsPrimary          bool   `json:"is_primary"`
	SelectedActivities []int  `json:"selected_activities"`
}

// CheckoutFormData is the only structure persisted across wizard steps.
type CheckoutFormData struct {
	Members       []MemberDetails `json:"members"`
	TermsAccepted bool            `json:"terms_accepted"`
}

// BookingConfirmation survives every reset except CompleteReset.
type BookingConfirmation struct {
	BookingID          string `json:"booking_id"`
	ConfirmationNumber string `json:"confirmation_number"`
	BookingDate        string `json:"booking_date"`
	Status             string `json:"status"`
	PaymentStatus      string `json:"payment_status"`
}

// Payload is the assembled submission handed to the payment-initiation caller.
type Payload struct {
	Activities    []ActivityBooking `json:"activities"`
	Ferries       []FerryBooking    `json:"ferries"`
	Members       []MemberDetails   `json:"members"`
	TermsAccepted bool              `json:"terms_accepted"`
	TotalPrice    float64           `json:"total_price"`
	BookingType   string            `json:"booking_type"`
	HasActivities bool              `json:"has_activities"`
	HasFerries    bool              `json:"has_ferries"`
}

// AssignmentResult reports per-item passenger deficits.
type AssignmentResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

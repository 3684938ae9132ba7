package checkout

import "strings"

// ActivityItemMetadata projects activity cart entries into requirement
// summaries. Order is preserved: metadata index == item index, and member
// assignments reference that order. Missing upstream fields degrade to
// zero/empty values instead of failing.
func ActivityItemMetadata(items []ActivityBooking) []ItemMetadata {
	out := make([]ItemMetadata, 0, len(items))
	for _, it := range items {
		adults := it.SearchParams.Adults
		children := it.SearchParams.Children
		if adults < 0 {
			adults = 0
		}
		if children < 0 {
			children = 0
		}
		out = append(out, ItemMetadata{
			Type:          ItemActivity,
			Title:         strings.TrimSpace(it.Activity.Title),
			TotalRequired: adults + children,
			Adults:        adults,
			Children:      children,
			Date:          it.SearchParams.Date,
			Location:      strings.TrimSpace(it.SearchParams.Location),
		})
	}
	return out
}

// FerryItemMetadata projects ferry bookings. Infants count toward the ferry
// passenger requirement, unlike activities.
func FerryItemMetadata(bookings []FerryBooking) []ItemMetadata {
	out := make([]ItemMetadata, 0, len(bookings))
	for _, b := range bookings {
		adults := b.Passengers.Adults
		children := b.Passengers.Children
		infants := b.Passengers.Infants
		if adults < 0 {
			adults = 0
		}
		if children < 0 {
			children = 0
		}
		if infants < 0 {
			infants = 0
		}
		title := strings.TrimSpace(b.Ferry.Name)
		if title == "" {
			title = ferryRoute(b.Ferry)
		}
		out = append(out, ItemMetadata{
			Type:          ItemFerry,
			Title:         title,
			TotalRequired: adults + children + infants,
			Adults:        adults,
			Children:      children,
			Infants:       infants,
			Date:          b.BookingDate,
			Location:      ferryRoute(b.Ferry),
		})
	}
	return out
}

// MinimumMembersNeeded is the aggregate passenger requirement across the
// concatenated metadata.
func MinimumMembersNeeded(meta []ItemMetadata) int {
	total := 0
	for _, m := range meta {
		total += m.TotalRequired
	}
	return total
}

func ferryRoute(f Ferry) string {
	from := strings.TrimSpace(f.From)
	to := strings.TrimSpace(f.To)
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " - " + to
	}
}

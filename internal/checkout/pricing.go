package checkout

// ActivityTotal prices one activity cart entry under the tiered passenger
// formula: adults full price, children half, infants free. A selected option
// overrides the activity base price. The result is always recomputed from
// scratch, never patched incrementally.
func ActivityTotal(a Activity, params ActivitySearchParams, optionID string, quantity int) float64 {
	if quantity <= 0 {
		return 0
	}

	base := a.BasePrice
	if optionID != "" {
		for _, opt := range a.Options {
			if opt.ID == optionID {
				base = opt.Price
				break
			}
		}
	}

	adults := params.Adults
	children := params.Children
	if adults < 0 {
		adults = 0
	}
	if children < 0 {
		children = 0
	}

	perBooking := base * (float64(adults) + float64(children)*0.5)
	return perBooking * float64(quantity)
}

// RepriceActivity refreshes the stored total on a cart entry after a quantity
// or option change.
func RepriceActivity(b ActivityBooking) ActivityBooking {
	b.TotalPrice = ActivityTotal(b.Activity, b.SearchParams, b.ActivityOptionID, b.Quantity)
	return b
}

// GrandTotal sums activity totals as priced on the items plus the
// upstream-priced ferry totals. Ferry prices are never recomputed here.
func GrandTotal(activities []ActivityBooking, ferries []FerryBooking) float64 {
	var total float64
	for _, a := range activities {
		total += a.TotalPrice
	}
	for _, f := range ferries {
		total += f.TotalPrice
	}
	return total
}

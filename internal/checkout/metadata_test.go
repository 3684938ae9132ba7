package checkout

import "testing"

func sampleActivity(title string, adults, children int) ActivityBooking {
	return ActivityBooking{
		ID: "act-" + title,
		Activity: Activity{
			ID:        "a-" + title,
			Title:     title,
			BasePrice: 1000,
		},
		SearchParams: ActivitySearchParams{
			Adults:   adults,
			Children: children,
			Date:     "2026-09-10",
			Location: "Havelock",
		},
		Quantity:   1,
		TotalPrice: ActivityTotal(Activity{BasePrice: 1000}, ActivitySearchParams{Adults: adults, Children: children}, "", 1),
	}
}

func sampleFerry(name string, adults, children, infants int) FerryBooking {
	return FerryBooking{
		ID:            "fer-" + name,
		Ferry:         Ferry{ID: "f-" + name, Name: name, From: "Port Blair", To: "Havelock"},
		SelectedClass: "economy",
		SelectedSeats: []string{"A1", "A2"},
		Passengers:    FerryPassengers{Adults: adults, Children: children, Infants: infants},
		TotalPrice:    1800,
		BookingDate:   "2026-09-11",
	}
}

func TestActivityItemMetadataExcludesInfantsFromRequirement(t *testing.T) {
	meta := ActivityItemMetadata([]ActivityBooking{sampleActivity("Scuba", 2, 1)})
	if len(meta) != 1 {
		t.Fatalf("expected 1 metadata entry, got %d", len(meta))
	}
	m := meta[0]
	if m.TotalRequired != 3 {
		t.Fatalf("activity totalRequired = adults+children, got %d", m.TotalRequired)
	}
	if m.Title != "Scuba" || m.Location != "Havelock" || m.Date != "2026-09-10" {
		t.Fatalf("unexpected display fields: %+v", m)
	}
	if m.Type != ItemActivity {
		t.Fatalf("expected activity type, got %s", m.Type)
	}
}

func TestFerryItemMetadataCountsInfants(t *testing.T) {
	meta := FerryItemMetadata([]FerryBooking{sampleFerry("Green Ocean", 2, 1, 1)})
	if len(meta) != 1 {
		t.Fatalf("expected 1 metadata entry, got %d", len(meta))
	}
	if meta[0].TotalRequired != 4 {
		t.Fatalf("ferry totalRequired must include infants, got %d", meta[0].TotalRequired)
	}
	if meta[0].Location != "Port Blair - Havelock" {
		t.Fatalf("expected route string, got %q", meta[0].Location)
	}
}

func TestMetadataOrderFollowsItemOrder(t *testing.T) {
	meta := ActivityItemMetadata([]ActivityBooking{
		sampleActivity("First", 1, 0),
		sampleActivity("Second", 1, 0),
	})
	if meta[0].Title != "First" || meta[1].Title != "Second" {
		t.Fatalf("metadata order must match item order: %+v", meta)
	}
}

func TestMetadataToleratesMalformedEntries(t *testing.T) {
	meta := ActivityItemMetadata([]ActivityBooking{
		{SearchParams: ActivitySearchParams{Adults: -2, Children: -1}},
	})
	if meta[0].TotalRequired != 0 {
		t.Fatalf("malformed counts should degrade to zero, got %d", meta[0].TotalRequired)
	}
	if meta[0].Title != "" {
		t.Fatalf("missing title should stay empty, got %q", meta[0].Title)
	}
}

func TestMinimumMembersNeeded(t *testing.T) {
	act := ActivityItemMetadata([]ActivityBooking{sampleActivity("Scuba", 2, 1)})
	fer := FerryItemMetadata([]FerryBooking{sampleFerry("Green Ocean", 2, 0, 1)})
	all := append(append([]ItemMetadata{}, act...), fer...)
	if got := MinimumMembersNeeded(all); got != 6 {
		t.Fatalf("expected aggregate requirement 6, got %d", got)
	}
}

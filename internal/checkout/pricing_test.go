package checkout

import "testing"

func TestActivityTotalTieredFormula(t *testing.T) {
	a := Activity{BasePrice: 1000}
	params := ActivitySearchParams{Adults: 2, Children: 1}

	// 1000 x (2 + 1x0.5) = 2500
	if got := ActivityTotal(a, params, "", 1); got != 2500 {
		t.Fatalf("expected 2500, got %v", got)
	}
}

func TestActivityTotalOptionOverridesBasePrice(t *testing.T) {
	a := Activity{
		BasePrice: 1000,
		Options: []ActivityOption{
			{ID: "opt-private", Name: "Private boat", Price: 2000},
		},
	}
	params := ActivitySearchParams{Adults: 1}

	if got := ActivityTotal(a, params, "opt-private", 1); got != 2000 {
		t.Fatalf("expected option price 2000, got %v", got)
	}
	// unknown option falls back to base price
	if got := ActivityTotal(a, params, "opt-missing", 1); got != 1000 {
		t.Fatalf("expected base price fallback 1000, got %v", got)
	}
}

func TestActivityTotalScalesLinearlyWithQuantity(t *testing.T) {
	a := Activity{BasePrice: 1000}
	params := ActivitySearchParams{Adults: 2, Children: 1}

	one := ActivityTotal(a, params, "", 1)
	three := ActivityTotal(a, params, "", 3)
	if three != one*3 {
		t.Fatalf("quantity must rescale linearly: q1=%v q3=%v", one, three)
	}
	if got := ActivityTotal(a, params, "", 0); got != 0 {
		t.Fatalf("zero quantity prices to 0, got %v", got)
	}
}

func TestActivityTotalIdempotent(t *testing.T) {
	a := Activity{BasePrice: 750}
	params := ActivitySearchParams{Adults: 3, Children: 2}

	first := ActivityTotal(a, params, "", 2)
	second := ActivityTotal(a, params, "", 2)
	if first != second {
		t.Fatalf("identical arguments must price identically: %v vs %v", first, second)
	}
}

func TestGrandTotalSumsActivityAndFerryTotals(t *testing.T) {
	activities := []ActivityBooking{{TotalPrice: 2500}}
	ferries := []FerryBooking{{TotalPrice: 1800}}
	if got := GrandTotal(activities, ferries); got != 4300 {
		t.Fatalf("expected 4300, got %v", got)
	}
}

func TestRepriceActivityRefreshesStoredTotal(t *testing.T) {
	b := ActivityBooking{
		Activity:     Activity{BasePrice: 1000},
		SearchParams: ActivitySearchParams{Adults: 2, Children: 1},
		Quantity:     1,
		TotalPrice:   1, // stale
	}
	b = RepriceActivity(b)
	if b.TotalPrice != 2500 {
		t.Fatalf("expected recomputed total 2500, got %v", b.TotalPrice)
	}
}

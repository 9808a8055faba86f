package gst

import "testing"

func TestSuggestSellingPriceDairy(t *testing.T) {
	p := DefaultPricer()
	if got := p.SuggestSellingPrice(100, CategoryDairy); got != 125.00 {
		t.Fatalf("expected 125.00 at 25%% margin, got %v", got)
	}
}

func TestSuggestSellingPriceDefaultMargin(t *testing.T) {
	p := DefaultPricer()
	if got := p.SuggestSellingPrice(200, Category("pottery")); got != 230.00 {
		t.Fatalf("expected 230.00 at default 15%% margin, got %v", got)
	}
	if got := p.SuggestSellingPrice(200, CategoryUnknown); got != 230.00 {
		t.Fatalf("expected 230.00 for missing category, got %v", got)
	}
}

func TestSuggestSellingPriceNonPositiveCost(t *testing.T) {
	p := DefaultPricer()
	if got := p.SuggestSellingPrice(0, CategoryGrocery); got != 0 {
		t.Fatalf("expected 0 for zero cost, got %v", got)
	}
	if got := p.SuggestSellingPrice(-10, CategoryGrocery); got != 0 {
		t.Fatalf("expected 0 for negative cost, got %v", got)
	}
}

func TestSuggestSellingPriceRounding(t *testing.T) {
	p := DefaultPricer()
	// 33.33 * 1.10 = 36.663, half away from zero -> 36.66
	if got := p.SuggestSellingPrice(33.33, CategoryGrocery); got != 36.66 {
		t.Fatalf("expected 36.66, got %v", got)
	}
	// 10.10 * 1.30 = 13.13 at the snacks 30% margin
	if got := p.SuggestSellingPrice(10.10, CategorySnacks); got != 13.13 {
		t.Fatalf("expected 13.13, got %v", got)
	}
}

func TestSuggestSellingPriceAlwaysAboveCost(t *testing.T) {
	p := DefaultPricer()
	// The smallest table margin is 8%, so any cost from 0.1 up adds at
	// least half a paisa and survives the 2-decimal rounding.
	costs := []float64{0.1, 1, 99.99, 1500, 25000}
	for category := range p.Margins {
		for _, cost := range costs {
			if got := p.SuggestSellingPrice(cost, category); got <= cost {
				t.Fatalf("selling price %v not above cost %v for %s", got, cost, category)
			}
		}
	}
}

func TestSuggestSellingPriceSubPaisaMargin(t *testing.T) {
	p := DefaultPricer()
	// A one-paisa cost cannot express a small margin in two decimals.
	// The suggestion collapses back to cost, never below it.
	for category := range p.Margins {
		if got := p.SuggestSellingPrice(0.01, category); got < 0.01 {
			t.Fatalf("selling price %v dropped below cost 0.01 for %s", got, category)
		}
	}
	if got := p.SuggestSellingPrice(0.01, CategoryGrocery); got != 0.01 {
		t.Fatalf("expected 0.01 at 10%% margin on one paisa, got %v", got)
	}
}

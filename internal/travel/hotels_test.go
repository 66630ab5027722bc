package travel

import (
	"context"
	"strings"
	"testing"
)

func TestCostIndexFor(t *testing.T) {
	if got := costIndexFor("zagreb"); got != 0.8 {
		t.Fatalf("zagreb = %v", got)
	}
	if got := costIndexFor("New York City"); got != 2.0 {
		t.Fatalf("partial match = %v", got)
	}
	if got := costIndexFor("nowhere"); got != 1.0 {
		t.Fatalf("default = %v", got)
	}
}

func TestEstimateHotelPrice(t *testing.T) {
	first := estimateHotelPrice(2, "zagreb", "Hotel Dubrovnik")
	second := estimateHotelPrice(2, "zagreb", "Hotel Dubrovnik")
	if first != second {
		t.Fatalf("not deterministic: %d vs %d", first, second)
	}
	// Base 85 scaled by Zagreb's 0.8 index, then ±15% variance.
	if first < 57 || first > 79 {
		t.Fatalf("price %d out of range", first)
	}
	if got := estimateHotelPrice(1, "sarajevo", "x"); got < 25 {
		t.Fatalf("price %d below minimum", got)
	}
}

func TestHotelBudgetCap(t *testing.T) {
	if got := HotelBudgetCap(120, "luxury"); got != 120 {
		t.Fatalf("numeric budget should win, got %d", got)
	}
	if got := HotelBudgetCap(0, "medium"); got != 150 {
		t.Fatalf("medium = %d", got)
	}
	if got := HotelBudgetCap(0, ""); got != 0 {
		t.Fatalf("no budget = %d", got)
	}
}

func TestMockHotels(t *testing.T) {
	hotels := mockHotels("split")
	if len(hotels) != 4 {
		t.Fatalf("got %d hotels", len(hotels))
	}
	if hotels[0].Name != "Split Central 1" {
		t.Fatalf("name = %q", hotels[0].Name)
	}
	wantPrices := []int{95, 110, 125, 140}
	for i, hotel := range hotels {
		if hotel.PricePerNight != wantPrices[i] {
			t.Errorf("hotel %d price = %d, want %d", i, hotel.PricePerNight, wantPrices[i])
		}
	}
}

func TestSearchHotelsOffline(t *testing.T) {
	b := offlineBuilder(t)
	hotels := b.searchHotels(context.Background(), "split", "", "", 0)
	if len(hotels) == 0 {
		t.Fatal("expected fallback hotels")
	}
	for i := 1; i < len(hotels); i++ {
		if hotels[i-1].PricePerNight > hotels[i].PricePerNight {
			t.Fatalf("hotels not sorted by price: %+v", hotels)
		}
	}
	seen := map[string]bool{}
	for _, hotel := range hotels {
		key := strings.ToLower(hotel.Name)
		if seen[key] {
			t.Fatalf("duplicate hotel %q", hotel.Name)
		}
		seen[key] = true
	}
}

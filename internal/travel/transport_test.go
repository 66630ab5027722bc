package travel

import (
	"regexp"
	"strings"
	"testing"
)

func TestSeededDeparture(t *testing.T) {
	first := seededDeparture("omisalj", "london")
	second := seededDeparture("omisalj", "london")
	if first != second {
		t.Fatalf("not deterministic: %q vs %q", first, second)
	}
	if !regexp.MustCompile(`^(0[6-9]|1[0-4]):(00|15|30|45)$`).MatchString(first) {
		t.Fatalf("departure %q out of expected range", first)
	}
}

func TestArrivalFromDuration(t *testing.T) {
	cases := []struct {
		departure, duration, want string
	}{
		{"21:10", "12h", "09:10 (+1d)"},
		{"08:00", "2h 30m", "10:30"},
		{"10:00", "15h", "01:00 (+1d)"},
		{"08:00", "overnight", "same day"},
	}
	for _, tc := range cases {
		if got := arrivalFromDuration(tc.departure, tc.duration); got != tc.want {
			t.Errorf("arrivalFromDuration(%q, %q) = %q, want %q", tc.departure, tc.duration, got, tc.want)
		}
	}
}

func TestEstimateBusPriceClamped(t *testing.T) {
	if got := estimateBusPrice("", ""); got != 40 {
		t.Fatalf("default price = %d", got)
	}
	price := estimateBusPrice("zagreb", "london")
	if price < 25 || price > 180 {
		t.Fatalf("price %d out of range", price)
	}
}

func TestDirectBusRoute(t *testing.T) {
	buses := buildBusOptions("zagreb", "vienna")
	if len(buses) != 1 {
		t.Fatalf("got %d buses", len(buses))
	}
	bus := buses[0]
	if bus.Company != "FlixBus" || bus.Segments != 1 {
		t.Fatalf("unexpected bus %+v", bus)
	}
	if bus.Route != "Zagreb → Vienna" {
		t.Fatalf("route = %q", bus.Route)
	}
	if !strings.Contains(bus.Link, "rome2rio.com/s/zagreb/vienna") {
		t.Fatalf("link = %q", bus.Link)
	}
}

func TestHubRoutingWithLocalLeg(t *testing.T) {
	buses := buildBusOptions("omisalj", "munich")
	if len(buses) != 2 {
		t.Fatalf("got %d buses", len(buses))
	}
	local, long := buses[0], buses[1]
	if local.Company != "Lokalni prijevoz" || local.Price != 5 || local.Duration != "30 min" {
		t.Fatalf("local leg %+v", local)
	}
	if long.Company != "FlixBus" || long.Segments != 2 {
		t.Fatalf("long leg %+v", long)
	}
	if !strings.Contains(long.Route, "Rijeka") {
		t.Fatalf("long leg should start at the hub: %q", long.Route)
	}
}

func TestHubRoutingFallsBackToRome2Rio(t *testing.T) {
	buses := buildBusOptions("omisalj", "london")
	if len(buses) != 2 {
		t.Fatalf("got %d buses", len(buses))
	}
	if buses[1].Company != "Rome2Rio" || buses[1].Segments != 2 {
		t.Fatalf("second leg %+v", buses[1])
	}
}

func TestNoHubReferral(t *testing.T) {
	buses := buildBusOptions("tokyo", "london")
	if len(buses) != 1 {
		t.Fatalf("got %d buses", len(buses))
	}
	if buses[0].Company != "Rome2Rio" || buses[0].Segments != 0 {
		t.Fatalf("referral %+v", buses[0])
	}
	if buses[0].Price != 0 {
		t.Fatalf("referral should not invent a price: %d", buses[0].Price)
	}
}

func TestTrainOptions(t *testing.T) {
	trains := buildTrainOptions("zagreb", "munich", "https://www.rome2rio.com/s/zagreb/munich")
	if len(trains) != 1 {
		t.Fatalf("got %d trains", len(trains))
	}
	train := trains[0]
	if train.Operator != "Railjet" {
		t.Fatalf("operator = %q for even-length destination", train.Operator)
	}
	if train.Departure != "21:10" || train.Arrival != "07:05 (+1d)" {
		t.Fatalf("times %s → %s", train.Departure, train.Arrival)
	}
	if train.Price < 35 || train.Price > 150 {
		t.Fatalf("price %d out of range", train.Price)
	}
	if !strings.Contains(train.Duration, "overnight") {
		t.Fatalf("duration = %q", train.Duration)
	}

	odd := buildTrainOptions("zagreb", "paris", "link")
	if odd[0].Operator != "EuroNight" {
		t.Fatalf("operator = %q for odd-length destination", odd[0].Operator)
	}
}

func TestSlugCity(t *testing.T) {
	if got := slugCity("Mali Lošinj"); got != "mali-loinj" {
		t.Fatalf("slug = %q", got)
	}
	if got := slugCity("New York"); got != "new-york" {
		t.Fatalf("slug = %q", got)
	}
}

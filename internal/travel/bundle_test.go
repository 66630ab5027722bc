package travel

import (
	"context"
	"strings"
	"testing"
)

func TestBuildBundleOffline(t *testing.T) {
	b := offlineBuilder(t)
	bundle := b.BuildBundle(context.Background(), Request{
		Origin:       "omisalj",
		Destination:  "london",
		BudgetLevel:  "medium",
		LanguageCode: "hr",
		Preferences:  []string{"good_food"},
	})

	if bundle.Driving == nil {
		t.Fatal("expected driving option")
	}
	if len(bundle.Flights) == 0 {
		t.Fatal("expected mock flights")
	}
	if len(bundle.Buses) == 0 {
		t.Fatal("expected bus options")
	}
	if len(bundle.Trains) != 1 {
		t.Fatalf("got %d trains", len(bundle.Trains))
	}
	if len(bundle.Hotels) == 0 {
		t.Fatal("expected hotels")
	}
	if len(bundle.Restaurants) == 0 || len(bundle.Activities) == 0 {
		t.Fatal("expected places")
	}
	if !strings.Contains(bundle.Links.Booking, "booking.com") {
		t.Fatalf("booking link = %q", bundle.Links.Booking)
	}
	if !strings.Contains(bundle.Links.Rome2Rio, "omisalj/london") {
		t.Fatalf("rome2rio link = %q", bundle.Links.Rome2Rio)
	}
	if bundle.IsReturnTrip {
		t.Fatal("outbound bundle flagged as return trip")
	}
}

func TestBuildBundleSkipsFlightsForShortRoutes(t *testing.T) {
	b := offlineBuilder(t)
	bundle := b.BuildBundle(context.Background(), Request{
		Origin:      "rijeka",
		Destination: "zagreb",
	})
	if len(bundle.Flights) != 0 {
		t.Fatalf("expected no flights for a 140 km route, got %d", len(bundle.Flights))
	}
	if bundle.Driving == nil {
		t.Fatal("expected driving option")
	}
}

func TestBuildReturnBundleTransportOnly(t *testing.T) {
	b := offlineBuilder(t)
	bundle := b.BuildReturnBundle(context.Background(), Request{
		Origin:       "london",
		Destination:  "zagreb",
		ReturnDate:   "2026-12-10",
		LanguageCode: "en",
	})
	if !bundle.IsReturnTrip {
		t.Fatal("missing return-trip flag")
	}
	if len(bundle.Hotels) != 0 || len(bundle.Restaurants) != 0 || len(bundle.Activities) != 0 {
		t.Fatal("return bundle should carry transport only")
	}
	if len(bundle.Flights) == 0 {
		t.Fatal("expected return flights")
	}
	if bundle.Links.Booking != "" {
		t.Fatalf("booking link on return trip: %q", bundle.Links.Booking)
	}
	if bundle.ReturnDate != "2026-12-10" {
		t.Fatalf("return date = %q", bundle.ReturnDate)
	}
}

func TestSerialize(t *testing.T) {
	b := offlineBuilder(t)
	bundle := b.BuildBundle(context.Background(), Request{Origin: "zagreb", Destination: "london"})
	data := bundle.Serialize()
	if !strings.Contains(data, `"destination":"london"`) {
		t.Fatalf("serialized bundle missing destination: %s", data)
	}
	if !strings.Contains(data, `"links"`) {
		t.Fatal("serialized bundle missing links")
	}
}

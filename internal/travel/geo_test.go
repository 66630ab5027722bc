package travel

import (
	"strings"
	"testing"
)

func TestDrivingDistanceCuratedTable(t *testing.T) {
	if got := drivingDistanceKM("zagreb", "rijeka"); got != 140 {
		t.Fatalf("zagreb-rijeka = %d", got)
	}
	if got := drivingDistanceKM("Rijeka", "Zagreb"); got != 140 {
		t.Fatalf("reverse lookup = %d", got)
	}
	if got := drivingDistanceKM("omišalj", "athens"); got != 1850 {
		t.Fatalf("omišalj-athens = %d", got)
	}
}

func TestDrivingDistanceHaversineFallback(t *testing.T) {
	got := drivingDistanceKM("zagreb", "berlin")
	if got < 900 || got > 1200 {
		t.Fatalf("zagreb-berlin estimate %d km out of range", got)
	}
}

func TestDrivingDistanceUnknownCity(t *testing.T) {
	if got := drivingDistanceKM("zagreb", "smallville"); got != 0 {
		t.Fatalf("got %d for unknown city", got)
	}
}

func TestDrivingImpossibleAcrossOcean(t *testing.T) {
	if drivingPossible("zagreb", "new york") {
		t.Fatal("zagreb-new york should not be drivable")
	}
	if opt := buildDrivingOption("zagreb", "new york"); opt != nil {
		t.Fatalf("got driving option %+v", opt)
	}
}

func TestDrivingPossibleAssumesUnknownCitiesDrivable(t *testing.T) {
	if !drivingPossible("omisalj", "vrbovsko") {
		t.Fatal("unknown small towns should stay drivable")
	}
	if drivingPossible("somewhere", "london") {
		t.Fatal("generic endpoint should not be drivable")
	}
}

func TestEstimateDrivingTime(t *testing.T) {
	cases := map[int]string{
		40:   "30 min",
		400:  "5h 0min",
		1850: "23h (preporučeno 3 dana)",
	}
	for km, want := range cases {
		if got := estimateDrivingTime(km); got != want {
			t.Errorf("estimateDrivingTime(%d) = %q, want %q", km, got, want)
		}
	}
}

func TestEstimateTollCostCuratedRoute(t *testing.T) {
	if got := estimateTollCost("zagreb", "london", 1750); got != 110 {
		t.Fatalf("zagreb-london toll = %d", got)
	}
	if got := estimateTollCost("london", "zagreb", 1750); got != 110 {
		t.Fatalf("reverse toll = %d", got)
	}
}

func TestEstimateTollCostVignette(t *testing.T) {
	// Destination Austria adds a vignette on top of the per-km rate.
	km := drivingDistanceKM("zagreb", "vienna")
	toll := estimateTollCost("zagreb", "vienna", km)
	perKM := int(float64(km) * (0.08 + 0.06) / 2)
	if toll != perKM+15 {
		t.Fatalf("toll = %d, want %d", toll, perKM+15)
	}
}

func TestEstimateFuelCost(t *testing.T) {
	if got := estimateFuelCost(1000); got != 112 {
		t.Fatalf("fuel for 1000 km = %d", got)
	}
	if got := estimateFuelCost(0); got != 0 {
		t.Fatalf("fuel for 0 km = %d", got)
	}
}

func TestBuildDrivingOption(t *testing.T) {
	opt := buildDrivingOption("omišalj", "athens")
	if opt == nil {
		t.Fatal("expected driving option")
	}
	if opt.DistanceKM != 1850 {
		t.Fatalf("distance = %d", opt.DistanceKM)
	}
	if opt.FuelCost != 207 || opt.TollCost != 75 || opt.TotalCost != 282 {
		t.Fatalf("costs = %d + %d = %d", opt.FuelCost, opt.TollCost, opt.TotalCost)
	}
	if opt.DaysRecommended != 3 {
		t.Fatalf("days = %d", opt.DaysRecommended)
	}
	if !strings.Contains(opt.Duration, "preporučeno 3 dana") {
		t.Fatalf("duration = %q", opt.Duration)
	}
	if !strings.Contains(opt.Link, "google.com/maps/dir/") {
		t.Fatalf("link = %q", opt.Link)
	}
	if !strings.Contains(opt.Notes, "Višednevno putovanje") {
		t.Fatalf("notes = %q", opt.Notes)
	}
}

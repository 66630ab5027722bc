package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("id", "secret", "test", zap.NewNop())
	c.baseURL = srv.URL
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestAccessTokenIsCached(t *testing.T) {
	var tokenCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&tokenCalls, 1)
		writeJSON(t, w, map[string]any{"access_token": "tok-1", "expires_in": 1800})
	})
	c := newTestClient(t, mux)

	for i := 0; i < 3; i++ {
		token, err := c.accessToken(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if token != "tok-1" {
			t.Fatalf("got %q", token)
		}
	}
	if n := atomic.LoadInt64(&tokenCalls); n != 1 {
		t.Fatalf("token endpoint hit %d times", n)
	}
}

func TestSearchFlights(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"access_token": "tok", "expires_in": 1800})
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header %q", got)
		}
		if got := r.URL.Query().Get("originLocationCode"); got != "ZAG" {
			t.Errorf("origin %q", got)
		}
		writeJSON(t, w, map[string]any{
			"data": []map[string]any{{
				"itineraries": []map[string]any{{
					"duration": "PT2H30M",
					"segments": []map[string]any{
						{
							"carrierCode": "OU",
							"departure":   map[string]any{"iataCode": "ZAG", "at": "2026-12-01T06:30:00"},
							"arrival":     map[string]any{"iataCode": "FRA", "at": "2026-12-01T08:00:00"},
						},
						{
							"carrierCode": "LH",
							"departure":   map[string]any{"iataCode": "FRA", "at": "2026-12-01T09:10:00"},
							"arrival":     map[string]any{"iataCode": "LHR", "at": "2026-12-01T10:00:00"},
						},
					},
				}},
				"price": map[string]any{"total": "149.99"},
			}},
		})
	})
	c := newTestClient(t, mux)

	flights, err := c.SearchFlights(context.Background(), "zagreb", "LHR", "2026-12-01", "", 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(flights) != 1 {
		t.Fatalf("got %d flights", len(flights))
	}
	f := flights[0]
	if f.Airline != "OU" || f.Price != 149 || f.Stops != 1 {
		t.Fatalf("unexpected flight %+v", f)
	}
	if f.Duration != "2h 30m" {
		t.Fatalf("duration %q", f.Duration)
	}
	if f.DepartureAirport != "ZAG" || f.ArrivalAirport != "LHR" {
		t.Fatalf("airports %s -> %s", f.DepartureAirport, f.ArrivalAirport)
	}
}

func TestSearchHotelsTwoStep(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"access_token": "tok", "expires_in": 1800})
	})
	mux.HandleFunc("/v1/reference-data/locations/hotels/by-city", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"data": []map[string]any{{"hotelId": "H1"}, {"hotelId": "H2"}}})
	})
	mux.HandleFunc("/v3/shopping/hotel-offers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"data": []map[string]any{
				{
					"hotel": map[string]any{"name": "Hotel Esplanade", "address": map[string]any{"countryCode": "HR"}},
					"offers": []map[string]any{
						{"price": map[string]any{"total": "180.00"}},
						{"price": map[string]any{"total": "120.00"}},
					},
				},
				{
					"hotel":  map[string]any{"name": "Pricey Palace"},
					"offers": []map[string]any{{"price": map[string]any{"total": "900.00"}}},
				},
			},
		})
	})
	c := newTestClient(t, mux)

	hotels, err := c.SearchHotels(context.Background(), "ZAG", "2026-12-01", "2026-12-03", 1, 300, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hotels) != 1 {
		t.Fatalf("got %d hotels", len(hotels))
	}
	if hotels[0].Name != "Hotel Esplanade" || hotels[0].PricePerNight != 120 {
		t.Fatalf("unexpected hotel %+v", hotels[0])
	}
}

func TestUnconfiguredClientReturnsNothing(t *testing.T) {
	c := NewClient("", "", "test", nil)
	flights, err := c.SearchFlights(context.Background(), "ZAG", "LHR", "", "", 1, 5)
	if err != nil || flights != nil {
		t.Fatalf("got %v, %v", flights, err)
	}
	code, err := c.IATACode(context.Background(), "Zagreb")
	if err != nil || code != "" {
		t.Fatalf("got %q, %v", code, err)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[string]string{
		"PT2H30M": "2h 30m",
		"PT2H":    "2h",
		"PT45M":   "45m",
		"bogus":   "?",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%q) = %q, want %q", in, got, want)
		}
	}
}

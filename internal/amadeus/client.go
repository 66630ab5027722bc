// README: Amadeus travel API client (flights, hotels, IATA lookup) with cached OAuth tokens.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	testBaseURL       = "https://test.api.amadeus.com"
	productionBaseURL = "https://api.amadeus.com"

	tokenCacheKey = "access_token"
)

// Flight is one flight offer normalized for the travel bundle.
type Flight struct {
	Airline          string `json:"airline"`
	Price            int    `json:"price"`
	Currency         string `json:"currency"`
	Duration         string `json:"duration"`
	Stops            int    `json:"stops"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	Source           string `json:"source"`
}

// Hotel is one hotel offer normalized for the travel bundle.
type Hotel struct {
	Name          string `json:"name"`
	PricePerNight int    `json:"price_per_night"`
	Currency      string `json:"currency"`
	Address       string `json:"address"`
	Source        string `json:"source"`
}

// Client talks to the Amadeus self-service APIs. A client without credentials
// is valid and answers every search with no results, letting the travel layer
// fall back to estimates.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpc        *http.Client
	tokens       *cache.Cache
	log          *zap.Logger
}

// NewClient builds a Client for the given environment ("test" or "production").
func NewClient(clientID, clientSecret, env string, log *zap.Logger) *Client {
	baseURL := testBaseURL
	if strings.EqualFold(strings.TrimSpace(env), "production") {
		baseURL = productionBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		baseURL:      baseURL,
		httpc:        &http.Client{Timeout: 10 * time.Second},
		tokens:       cache.New(25*time.Minute, 5*time.Minute),
		log:          log,
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a valid OAuth token, reusing the cached one until it
// nears expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if cached, ok := c.tokens.Get(tokenCacheKey); ok {
		return cached.(string), nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amadeus: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus: token request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("amadeus: token request failed: status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("amadeus: decode token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("amadeus: empty access token")
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - 5*time.Minute
	if ttl <= 0 {
		ttl = time.Minute
	}
	c.tokens.Set(tokenCacheKey, token.AccessToken, ttl)
	return token.AccessToken, nil
}

// get performs an authorized GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("amadeus: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("amadeus: do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("amadeus: %s failed: status %d (%s)", path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("amadeus: decode %s: %w", path, err)
	}
	return nil
}

type flightOffersResponse struct {
	Data []struct {
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
				Departure   struct {
					IATACode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IATACode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}

// SearchFlights queries the flight offers API. origin and destination are
// IATA codes. Dates are ISO (YYYY-MM-DD); an empty departure defaults to a
// week from now.
func (c *Client) SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]Flight, error) {
	if !c.Configured() {
		return nil, nil
	}
	if adults <= 0 {
		adults = 1
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	if departureDate == "" {
		departureDate = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	}

	params := url.Values{
		"originLocationCode":      {iata(origin)},
		"destinationLocationCode": {iata(destination)},
		"departureDate":           {departureDate},
		"adults":                  {strconv.Itoa(adults)},
		"max":                     {strconv.Itoa(maxResults)},
		"currencyCode":            {"EUR"},
	}
	if returnDate != "" {
		params.Set("returnDate", returnDate)
	}

	var resp flightOffersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers", params, &resp); err != nil {
		c.log.Warn("amadeus flight search failed", zap.Error(err))
		return nil, err
	}

	var flights []Flight
	for _, offer := range resp.Data {
		if len(offer.Itineraries) == 0 {
			continue
		}
		outbound := offer.Itineraries[0]
		if len(outbound.Segments) == 0 {
			continue
		}
		first := outbound.Segments[0]
		last := outbound.Segments[len(outbound.Segments)-1]
		price, _ := strconv.ParseFloat(offer.Price.Total, 64)

		flights = append(flights, Flight{
			Airline:          first.CarrierCode,
			Price:            int(price),
			Currency:         "EUR",
			Duration:         FormatDuration(outbound.Duration),
			Stops:            len(outbound.Segments) - 1,
			DepartureTime:    first.Departure.At,
			ArrivalTime:      last.Arrival.At,
			DepartureAirport: first.Departure.IATACode,
			ArrivalAirport:   last.Arrival.IATACode,
			Source:           "amadeus",
		})
		if len(flights) >= maxResults {
			break
		}
	}
	return flights, nil
}

type hotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
	} `json:"data"`
}

type hotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			Name    string `json:"name"`
			Address struct {
				CountryCode string `json:"countryCode"`
			} `json:"address"`
		} `json:"hotel"`
		Offers []struct {
			Price struct {
				Total string `json:"total"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

// SearchHotels looks up hotels in the IATA city code and returns offers for
// the cheapest room in each. maxPrice of 0 means no cap.
func (c *Client) SearchHotels(ctx context.Context, cityCode, checkInDate, checkOutDate string, adults, maxPrice, maxResults int) ([]Hotel, error) {
	if !c.Configured() {
		return nil, nil
	}
	if adults <= 0 {
		adults = 1
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	if checkInDate == "" {
		checkInDate = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	}
	if checkOutDate == "" {
		if checkIn, err := time.Parse("2006-01-02", checkInDate); err == nil {
			checkOutDate = checkIn.AddDate(0, 0, 2).Format("2006-01-02")
		}
	}

	var list hotelListResponse
	err := c.get(ctx, "/v1/reference-data/locations/hotels/by-city", url.Values{
		"cityCode":   {iata(cityCode)},
		"radius":     {"50"},
		"radiusUnit": {"KM"},
	}, &list)
	if err != nil {
		c.log.Warn("amadeus hotel search failed", zap.Error(err))
		return nil, err
	}

	var hotelIDs []string
	for _, h := range list.Data {
		if h.HotelID != "" {
			hotelIDs = append(hotelIDs, h.HotelID)
		}
		if len(hotelIDs) >= 10 {
			break
		}
	}
	if len(hotelIDs) == 0 {
		return nil, nil
	}

	var offers hotelOffersResponse
	err = c.get(ctx, "/v3/shopping/hotel-offers", url.Values{
		"hotelIds":     {strings.Join(hotelIDs, ",")},
		"adults":       {strconv.Itoa(adults)},
		"checkInDate":  {checkInDate},
		"checkOutDate": {checkOutDate},
		"currency":     {"EUR"},
	}, &offers)
	if err != nil {
		c.log.Warn("amadeus hotel offers failed", zap.Error(err))
		return nil, err
	}

	var hotels []Hotel
	for _, data := range offers.Data {
		if len(data.Offers) == 0 {
			continue
		}
		cheapest := 0.0
		for i, offer := range data.Offers {
			total, _ := strconv.ParseFloat(offer.Price.Total, 64)
			if i == 0 || total < cheapest {
				cheapest = total
			}
		}
		perNight := int(cheapest)
		if maxPrice > 0 && perNight > maxPrice {
			continue
		}
		name := data.Hotel.Name
		if name == "" {
			name = "Unknown Hotel"
		}
		hotels = append(hotels, Hotel{
			Name:          name,
			PricePerNight: perNight,
			Currency:      "EUR",
			Address:       data.Hotel.Address.CountryCode,
			Source:        "amadeus",
		})
		if len(hotels) >= maxResults {
			break
		}
	}
	return hotels, nil
}

type locationsResponse struct {
	Data []struct {
		IATACode string `json:"iataCode"`
	} `json:"data"`
}

// IATACode resolves a city name to its IATA code via the locations API.
func (c *Client) IATACode(ctx context.Context, cityName string) (string, error) {
	if !c.Configured() {
		return "", nil
	}
	var resp locationsResponse
	err := c.get(ctx, "/v1/reference-data/locations", url.Values{
		"subType":     {"CITY,AIRPORT"},
		"keyword":     {cityName},
		"page[limit]": {"1"},
	}, &resp)
	if err != nil {
		c.log.Warn("amadeus IATA lookup failed", zap.Error(err))
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", nil
	}
	return resp.Data[0].IATACode, nil
}

func iata(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// FormatDuration converts an ISO 8601 duration like "PT2H30M" to "2h 30m".
func FormatDuration(isoDuration string) string {
	m := isoDurationPattern.FindStringSubmatch(isoDuration)
	if m == nil {
		return "?"
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	}
	return "?"
}

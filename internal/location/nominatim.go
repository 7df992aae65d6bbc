package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Nominatim reverse-geocodes through an OSM Nominatim-compatible endpoint.
type Nominatim struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatim creates a geocoder for the given base URL.
func NewNominatim(baseURL string) *Nominatim {
	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// nominatimResponse mirrors the JSON returned by GET /reverse.
type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// ReverseGeocode resolves coordinates to a city/country pair. The most
// specific available locality is used as the city.
func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error) {
	url := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%f&lon=%f", n.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Place{}, fmt.Errorf("creating reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "ecoquest-client")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Place{}, fmt.Errorf("decoding reverse geocode response: %w", err)
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}
	if city == "" {
		city = body.Address.State
	}

	return Place{City: city, Country: body.Address.Country}, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Location is the best-effort geolocation of a visitor. Every field is
// optional; a failed lookup yields the zero value and tracking continues
// without location data.
type Location struct {
	Country     *string
	CountryCode *string
	City        *string
	Latitude    *float64
	Longitude   *float64
}

// GeoService resolves an IP address to an approximate location through a
// third-party lookup service. The IP itself always comes from the server's
// view of the connection, never from a client-reported value.
type GeoService struct {
	http    httpDoer
	baseURL string
}

// NewGeoService creates a resolver against the given lookup base URL.
func NewGeoService(baseURL string) *GeoService {
	return &GeoService{
		http:    &http.Client{Timeout: 5 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// SetHTTPClient overrides the default HTTP client, used by tests.
func (s *GeoService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 5 * time.Second}
		return
	}
	s.http = client
}

type geoLookupResponse struct {
	CountryName string   `json:"country_name"`
	CountryCode string   `json:"country_code"`
	City        string   `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Error       bool     `json:"error"`
	Reason      string   `json:"reason"`
}

// Lookup resolves ip to a Location. It never returns an error: any failure
// (bad IP, transport error, service error) yields an empty Location so the
// caller can proceed without blocking on geolocation.
func (s *GeoService) Lookup(ctx context.Context, ip string) Location {
	ip = strings.TrimSpace(ip)
	if !lookupWorthy(ip) {
		return Location{}
	}

	url := fmt.Sprintf("%s/%s/json/", s.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return Location{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}
	}

	var payload geoLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error {
		return Location{}
	}

	location := Location{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}
	if country := strings.TrimSpace(payload.CountryName); country != "" {
		location.Country = &country
	}
	if code := strings.TrimSpace(payload.CountryCode); code != "" {
		location.CountryCode = &code
	}
	if city := strings.TrimSpace(payload.City); city != "" {
		location.City = &city
	}
	return location
}

// lookupWorthy filters out addresses the lookup service can never place:
// empty strings, unparsable values, loopback and private ranges.
func lookupWorthy(ip string) bool {
	if ip == "" {
		return false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified()
}

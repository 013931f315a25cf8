package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrPlaceNotFound is returned when the geocoder has no match for a name.
var ErrPlaceNotFound = errors.New("place not found")

// LatLon is a resolved map coordinate.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeocodeService resolves place names against a Nominatim-compatible search
// endpoint.
type GeocodeService struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeocodeService(baseURL string) *GeocodeService {
	return &GeocodeService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// nominatimResult matches the array entries Nominatim returns; lat/lon come
// back as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up a place name and returns its coordinates, or
// ErrPlaceNotFound when the geocoder has no results.
func (s *GeocodeService) Resolve(ctx context.Context, placeName string) (*LatLon, error) {
	reqURL := fmt.Sprintf("%s?format=json&q=%s", s.baseURL, url.QueryEscape(placeName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "vds-backend/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrPlaceNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, err
	}

	return &LatLon{Lat: lat, Lon: lon}, nil
}

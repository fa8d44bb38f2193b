package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

var geocodeClient = &http.Client{Timeout: 5 * time.Second}

// AllowedPostalCodes reads the operator's service-area postal codes from the
// environment (comma separated).
func AllowedPostalCodes() []string {
	raw := os.Getenv("SERVICE_POSTAL_CODES")
	if raw == "" {
		return nil
	}
	codes := strings.Split(raw, ",")
	for i := range codes {
		codes[i] = strings.TrimSpace(codes[i])
	}
	return codes
}

// PostalCodeAllowed checks a postal code against the allowed list.
func PostalCodeAllowed(code string, allowed []string) bool {
	code = strings.TrimSpace(code)
	for _, a := range allowed {
		if a != "" && a == code {
			return true
		}
	}
	return false
}

// IsServiceable decides whether an address can be serviced. The postal-code
// list is checked first; failing that, the address is geocoded and checked
// against the service-center radius. Geocoding being unavailable or failing
// never blocks checkout: the address is treated as serviceable.
func IsServiceable(line1, city, postalCode string, lat, lng *float64) bool {
	if PostalCodeAllowed(postalCode, AllowedPostalCodes()) {
		return true
	}

	centerLat, err1 := strconv.ParseFloat(os.Getenv("SERVICE_CENTER_LAT"), 64)
	centerLng, err2 := strconv.ParseFloat(os.Getenv("SERVICE_CENTER_LNG"), 64)
	radiusKm, err3 := strconv.ParseFloat(os.Getenv("SERVICE_RADIUS_KM"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		// No radius check configured, fail open
		return true
	}

	if lat == nil || lng == nil {
		glat, glng, err := Geocode(fmt.Sprintf("%s, %s, %s", line1, city, postalCode))
		if err != nil {
			log.Printf("Geocoding failed, treating address as serviceable: %v", err)
			return true
		}
		lat, lng = &glat, &glng
	}

	return HaversineKm(centerLat, centerLng, *lat, *lng) <= radiusKm
}

// Geocode resolves a free-form address to coordinates using a
// Nominatim-compatible endpoint
func Geocode(address string) (float64, float64, error) {
	base := os.Getenv("GEOCODER_URL")
	if base == "" {
		return 0, 0, fmt.Errorf("GEOCODER_URL is not set")
	}

	reqURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", base, url.QueryEscape(address))
	resp, err := geocodeClient.Get(reqURL)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding results for %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

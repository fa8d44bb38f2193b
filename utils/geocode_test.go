package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostalCodeAllowed(t *testing.T) {
	allowed := []string{"400001", "400002", "400003"}

	assert.True(t, PostalCodeAllowed("400002", allowed))
	assert.True(t, PostalCodeAllowed(" 400002 ", allowed))
	assert.False(t, PostalCodeAllowed("500001", allowed))
	assert.False(t, PostalCodeAllowed("", allowed))
	assert.False(t, PostalCodeAllowed("400001", nil))
}

func TestAllowedPostalCodesFromEnv(t *testing.T) {
	t.Setenv("SERVICE_POSTAL_CODES", "400001, 400002 ,400003")

	codes := AllowedPostalCodes()
	assert.Equal(t, []string{"400001", "400002", "400003"}, codes)
}

func TestHaversineKm(t *testing.T) {
	// Same point
	assert.InDelta(t, 0, HaversineKm(19.076, 72.877, 19.076, 72.877), 0.001)

	// Mumbai to Pune is roughly 120 km as the crow flies
	d := HaversineKm(19.076, 72.877, 18.520, 73.856)
	assert.InDelta(t, 120, d, 5)

	// Symmetric
	assert.InDelta(t, d, HaversineKm(18.520, 73.856, 19.076, 72.877), 0.001)
}

func TestIsServiceableAllowedPostalCode(t *testing.T) {
	t.Setenv("SERVICE_POSTAL_CODES", "400001")

	assert.True(t, IsServiceable("12 Marine Drive", "Mumbai", "400001", nil, nil))
}

func TestIsServiceableFailsOpenWithoutConfig(t *testing.T) {
	// No postal list and no radius configured: checkout must not be blocked
	t.Setenv("SERVICE_POSTAL_CODES", "")
	t.Setenv("SERVICE_CENTER_LAT", "")
	t.Setenv("SERVICE_CENTER_LNG", "")
	t.Setenv("SERVICE_RADIUS_KM", "")

	assert.True(t, IsServiceable("12 Marine Drive", "Mumbai", "999999", nil, nil))
}

func TestIsServiceableRadiusCheckWithCoordinates(t *testing.T) {
	t.Setenv("SERVICE_POSTAL_CODES", "400001")
	t.Setenv("SERVICE_CENTER_LAT", "19.076")
	t.Setenv("SERVICE_CENTER_LNG", "72.877")
	t.Setenv("SERVICE_RADIUS_KM", "25")

	near := 19.10
	nearLng := 72.90
	assert.True(t, IsServiceable("12 Marine Drive", "Mumbai", "888888", &near, &nearLng))

	far := 18.520
	farLng := 73.856
	assert.False(t, IsServiceable("1 FC Road", "Pune", "888888", &far, &farLng))
}

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPoint_Valid(t *testing.T) {
	testCases := []struct {
		name     string
		point    GeoPoint
		expected bool
	}{
		{name: "Valid", point: GeoPoint{Lat: 40.7128, Lng: -74.006}, expected: true},
		{name: "Bounds", point: GeoPoint{Lat: -90, Lng: 180}, expected: true},
		{name: "Latitude out of range", point: GeoPoint{Lat: 91, Lng: 0}, expected: false},
		{name: "Longitude out of range", point: GeoPoint{Lat: 0, Lng: -180.5}, expected: false},
		{name: "NaN", point: GeoPoint{Lat: math.NaN(), Lng: 0}, expected: false},
		{name: "Infinity", point: GeoPoint{Lat: 0, Lng: math.Inf(1)}, expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.point.Valid())
		})
	}
}

func TestGeoPoint_Round(t *testing.T) {
	assert.Equal(t, GeoPoint{Lat: 40.7128, Lng: -74.006}, GeoPoint{Lat: 40.7128001, Lng: -74.0060009}.Round(4))
	assert.Equal(t, GeoPoint{Lat: 0, Lng: 0}, GeoPoint{Lat: -0.00001, Lng: 0.00001}.Round(4))
}

func TestCursor(t *testing.T) {
	offset, err := DecodeCursor(EncodeCursor(40))
	require.NoError(t, err)
	assert.Equal(t, 40, offset)

	offset, err = DecodeCursor("")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	for _, bad := range []string{"!!!", "MTA", EncodeCursor(-1)} {
		_, err = DecodeCursor(bad)
		assert.ErrorIs(t, err, ErrMalformedCursor, bad)
	}
}

package services

import (
	"math"
	"testing"

	"rentals/models"
	"rentals/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCoordinatesPatterns(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want *Coordinates
	}{
		{"at zoom", "https://www.google.com/maps/@-32.8894587,-68.8458386,17z", &Coordinates{-32.8894587, -68.8458386}},
		{"query", "https://www.google.com/maps?q=-32.89,-68.84", &Coordinates{-32.89, -68.84}},
		{"query with space", "https://maps.google.com/?hl=es&q=-32.89, -68.84", &Coordinates{-32.89, -68.84}},
		{"place", "https://www.google.com/maps/place/Plaza+Independencia/@-32.8903,-68.8442/data=x", &Coordinates{-32.8903, -68.8442}},
		{"integers", "https://www.google.com/maps?q=10,20", &Coordinates{10, 20}},
		{"no match", "https://www.google.com/maps/search/mendoza", nil},
		{"empty", "", nil},
		{"garbage", "not a url @ all", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractCoordinates(tc.url))
		})
	}
}

func TestExtractCoordinatesBoundaries(t *testing.T) {
	assert.Equal(t, &Coordinates{90, 180}, ExtractCoordinates("https://www.google.com/maps?q=90,180"))
	assert.Equal(t, &Coordinates{-90, -180}, ExtractCoordinates("https://www.google.com/maps?q=-90,-180"))
	assert.Nil(t, ExtractCoordinates("https://www.google.com/maps?q=95,10"))
	assert.Nil(t, ExtractCoordinates("https://www.google.com/maps?q=10,-200"))
}

func TestExtractCoordinatesFallsThroughInvalidMatch(t *testing.T) {
	got := ExtractCoordinates("https://www.google.com/maps?q=95,10&x=/@-32.5,-68.5,12z")
	assert.Equal(t, &Coordinates{-32.5, -68.5}, got)
}

func TestSetMapsLogger(t *testing.T) {
	prev := mapsLogger
	t.Cleanup(func() { mapsLogger = prev })

	SetMapsLogger(logger.Nop{})
	assert.Equal(t, logger.Logger(logger.Nop{}), mapsLogger)
	SetMapsLogger(nil)
	assert.Equal(t, logger.Logger(logger.Nop{}), mapsLogger)
	assert.Nil(t, ExtractCoordinates("https://maps.google.com/?q=abc,def"))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
	assert.False(t, ValidCoordinates(0, math.Inf(1)))
	assert.False(t, ValidCoordinates(-90.0001, 0))
}

func TestGoogleMapsStaticURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps?q=0,0", GoogleMapsStaticURL(0, 0))
	assert.Equal(t, "https://www.google.com/maps?q=-32.8894587,-68.8458386", GoogleMapsStaticURL(-32.8894587, -68.8458386))
}

func TestApplyLocation(t *testing.T) {
	a := &models.Apartment{GoogleMapsURL: "https://www.google.com/maps/@-32.8894587,-68.8458386,17z"}
	ApplyLocation(a)
	require.NotNil(t, a.Latitude)
	assert.InDelta(t, -32.8894587, *a.Latitude, 1e-9)
	assert.Len(t, a.Geohash, 12)
	assert.Equal(t, "https://www.google.com/maps?q=-32.8894587,-68.8458386", MapURL(a))

	a.GoogleMapsURL = "https://example.com"
	ApplyLocation(a)
	assert.Nil(t, a.Latitude)
	assert.Empty(t, a.Geohash)
	assert.Empty(t, MapURL(a))
}

func TestClusterMarkers(t *testing.T) {
	lat1, lng1 := -32.8894, -68.8458
	lat2, lng2 := -32.8895, -68.8459
	lat3, lng3 := -34.6037, -58.3816
	apartments := []models.Apartment{
		{ID: "a", Latitude: &lat1, Longitude: &lng1},
		{ID: "b", Latitude: &lat2, Longitude: &lng2},
		{ID: "c", Latitude: &lat3, Longitude: &lng3},
		{ID: "d"},
	}

	markers := ClusterMarkers(apartments, 5)
	require.Len(t, markers, 2)
	total := 0
	for _, m := range markers {
		assert.Len(t, m.Geohash, 5)
		total += m.Count
	}
	assert.Equal(t, 3, total)

	assert.Len(t, ClusterMarkers(apartments, 0)[0].Geohash, int(DefaultGeohashPrecision))
}

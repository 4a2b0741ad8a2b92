package services

import (
	"context"
	"testing"

	"rentals/constants"
	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByAmenities(t *testing.T) {
	wifiPool := *testutil.NewApartment(testutil.WithAmenities(map[models.Amenity]bool{
		models.AmenityWiFi: true, models.AmenityPool: true,
	}))
	wifiOnly := *testutil.NewApartment(testutil.WithAmenities(map[models.Amenity]bool{models.AmenityWiFi: true}))
	none := *testutil.NewApartment()
	all := []models.Apartment{wifiPool, wifiOnly, none}

	assert.Len(t, FilterByAmenities(all, nil), 3)
	assert.Equal(t, []string{wifiPool.ID, wifiOnly.ID}, ids(FilterByAmenities(all, []models.Amenity{models.AmenityWiFi})))
	assert.Equal(t, []string{wifiPool.ID}, ids(FilterByAmenities(all, []models.Amenity{models.AmenityWiFi, models.AmenityPool})))
	assert.Empty(t, FilterByAmenities(all, []models.Amenity{models.AmenityGarden}))
}

func TestFilterByTextIgnoresAccentsAndCase(t *testing.T) {
	a := *testutil.NewApartment(testutil.Titled("Cabaña junto al río"))
	b := *testutil.NewApartment(testutil.Titled("Loft moderno"))
	all := []models.Apartment{a, b}

	got, suggestion := FilterByText(all, "CABANA")
	assert.Equal(t, []string{a.ID}, ids(got))
	assert.Empty(t, suggestion)

	got, _ = FilterByText(all, "")
	assert.Len(t, got, 2)
}

func TestFilterByTextToleratesTypos(t *testing.T) {
	a := *testutil.NewApartment(testutil.Titled("Departamento luminoso"))
	got, _ := FilterByText([]models.Apartment{a}, "luminozo")
	assert.Len(t, got, 1)
}

func TestFilterByTextSuggestsWhenEmpty(t *testing.T) {
	a := *testutil.NewApartment(testutil.Titled("Departamento luminoso"))
	got, suggestion := FilterByText([]models.Apartment{a}, "departmanto piscina")
	assert.Empty(t, got)
	assert.Contains(t, suggestion, "departamento")
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Equal(t, 1.0, calculateSimilarity("casa", "casa"))
	assert.InDelta(t, 0.5, calculateSimilarity("casa", "cosa"), 0.001)
}

func TestResolveLocale(t *testing.T) {
	for raw, want := range map[string]string{"": "es", "es": "es", "en": "en", " en ": "en"} {
		got, err := ResolveLocale(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"fr", "en-US", "!!", "EN", "Es", "eN"} {
		_, err := ResolveLocale(raw)
		require.Error(t, err, raw)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidLocale))
		assert.Equal(t, "Locale not found", apperrors.GetAppError(err).Message)
	}
	assert.Equal(t, []string{constants.LocaleES, constants.LocaleEN}, SupportedLocales())
}

func TestMergeFilters(t *testing.T) {
	in, out := testutil.D("2025-02-01"), testutil.D("2025-02-05")
	old := &dto.SearchFilters{
		CheckIn: &in, CheckOut: &out, Guests: 3, Query: "mendoza",
		Amenities: []models.Amenity{models.AmenityWiFi},
	}

	merged := MergeFilters(old, &dto.SearchFilters{Guests: 1, Amenities: []models.Amenity{models.AmenityPool, models.AmenityWiFi}}, false)
	assert.Equal(t, &in, merged.CheckIn)
	assert.Equal(t, 3, merged.Guests)
	assert.Equal(t, "mendoza", merged.Query)
	assert.Equal(t, []models.Amenity{models.AmenityWiFi, models.AmenityPool}, merged.Amenities)

	merged = MergeFilters(old, &dto.SearchFilters{Guests: 2, Query: "loft"}, true)
	assert.Equal(t, 2, merged.Guests)
	assert.Equal(t, "loft", merged.Query)

	fresh := &dto.SearchFilters{Guests: 2}
	assert.Same(t, fresh, MergeFilters(nil, fresh, true))
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(nil)
	assert.False(t, cache.Enabled())

	require.NoError(t, SaveLastFilters(ctx, cache, "s1", &dto.SearchFilters{Guests: 2}))
	got, err := GetLastFilters(ctx, cache, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, cache.DeleteByPrefix(ctx, constants.CacheSearchPrefix))

	var nilCache *Cache
	assert.False(t, nilCache.Enabled())
}

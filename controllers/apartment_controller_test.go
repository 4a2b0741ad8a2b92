package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/middleware"
	"rentals/models"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	err     error
	filters *dto.SearchFilters
	refined bool
}

func (f *fakeSearch) Search(_ context.Context, _ string, filters *dto.SearchFilters) (*dto.SearchResponse, error) {
	f.filters = filters
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SearchResponse{Data: []dto.ApartmentView{}}, nil
}

func (f *fakeSearch) Refine(ctx context.Context, sessionID string, filters *dto.SearchFilters, _ bool) (*dto.SearchResponse, error) {
	f.refined = true
	return f.Search(ctx, sessionID, filters)
}

func (f *fakeSearch) LastFilters(context.Context, string) (*dto.SearchFilters, error) {
	return nil, nil
}

type fakeReader struct{}

func (fakeReader) GetPublic(_ context.Context, id string) (*dto.ApartmentView, error) {
	if id != "apt-1" {
		return nil, apperrors.ErrApartmentNotFound
	}
	return &dto.ApartmentView{Apartment: &models.Apartment{ID: id, Title: "Loft"}}, nil
}

func (fakeReader) MapMarkers(context.Context, uint) ([]dto.MapMarker, error) {
	return []dto.MapMarker{}, nil
}

func (fakeReader) Calendar(_ context.Context, id string, from, to models.Date) (*dto.CalendarResponse, error) {
	return &dto.CalendarResponse{ApartmentID: id, From: from, To: to, Blocked: []dto.BlockedRange{}}, nil
}

func apartmentRouter(search *fakeSearch) *gin.Engine {
	r := gin.New()
	h := NewApartmentController(ApartmentControllerOptions{Search: search, Apartments: fakeReader{}, Logger: logger.Nop{}})
	r.GET("/api/v1/apartments", h.Search)
	r.GET("/api/v1/apartments/:id", h.Detail)
	r.GET("/api/v1/apartments/:id/calendar", h.Calendar)
	return r
}

func TestSearchParsesFilters(t *testing.T) {
	search := &fakeSearch{}
	w := do(apartmentRouter(search), http.MethodGet,
		"/api/v1/apartments?guests=3&amenities=wifi,pool&amenities=WIFI&check_in=2025-06-01&check_out=2025-06-03", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, search.filters.Guests)
	assert.Equal(t, []models.Amenity{models.AmenityWiFi, models.AmenityPool}, search.filters.Amenities)
	assert.True(t, search.filters.HasDates())
	assert.False(t, search.refined)

	do(apartmentRouter(search), http.MethodGet, "/api/v1/apartments?refine=true", "")
	assert.True(t, search.refined)
}

func TestSearchErrors(t *testing.T) {
	w := do(apartmentRouter(&fakeSearch{}), http.MethodGet, "/api/v1/apartments?amenities=sauna", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown amenity: sauna", errorMessage(t, w))

	w = do(apartmentRouter(&fakeSearch{}), http.MethodGet, "/api/v1/apartments?guests=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(apartmentRouter(&fakeSearch{}), http.MethodGet, "/api/v1/apartments?check_in=2025-06-05&check_out=2025-06-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(apartmentRouter(&fakeSearch{err: errors.New("db down")}), http.MethodGet, "/api/v1/apartments", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Search temporarily unavailable", errorMessage(t, w))
}

func TestApartmentDetailAndCalendar(t *testing.T) {
	r := apartmentRouter(&fakeSearch{})

	w := do(r, http.MethodGet, "/api/v1/apartments/apt-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/apartments/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Apartment not found", errorMessage(t, w))

	w = do(r, http.MethodGet, "/api/v1/apartments/apt-1/calendar?from=2025-06-01&to=2025-06-30", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cal dto.CalendarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cal))
	assert.Equal(t, "apt-1", cal.ApartmentID)

	w = do(r, http.MethodGet, "/api/v1/apartments/apt-1/calendar?from=2025-06-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocaleEndpoints(t *testing.T) {
	r := gin.New()
	r.Use(middleware.LocaleMiddleware(logger.Nop{}))
	h := NewLocaleController(logger.Nop{})
	r.GET("/api/v1/locale", h.Get)
	r.POST("/api/v1/locale", h.Set)

	w := do(r, http.MethodGet, "/api/v1/locale", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LocaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "es", resp.Locale)

	w = do(r, http.MethodGet, "/api/v1/locale", "", &http.Cookie{Name: "NEXT_LOCALE", Value: "fr"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Locale not found", errorMessage(t, w))

	w = do(r, http.MethodPost, "/api/v1/locale", `{"locale":"de"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/v1/locale", `{"locale":"en"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "NEXT_LOCALE", cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
	assert.False(t, cookies[0].HttpOnly)
}

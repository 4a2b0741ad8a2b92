package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBookings struct {
	created   *models.Booking
	createErr error
	gotLocale string
	gotStatus models.BookingStatus
	updateErr error
}

func (f *fakeBookings) CreateBooking(_ context.Context, b *models.Booking, locale string) (*models.Booking, dto.EmailOutcome, error) {
	f.gotLocale = locale
	if f.created != nil {
		f.created.ApartmentID = b.ApartmentID
	}
	return f.created, dto.EmailOutcome{Host: dto.DeliveryResult{Status: dto.DeliverySent}}, f.createErr
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id string, status models.BookingStatus, _ string) (*dto.UpdateBookingStatusResponse, error) {
	f.gotStatus = status
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dto.UpdateBookingStatusResponse{Booking: &models.Booking{ID: id, Status: status}}, nil
}

func (f *fakeBookings) GetBooking(context.Context, string) (*models.Booking, error) {
	return nil, apperrors.ErrBookingNotFound
}

func (f *fakeBookings) ListBookings(context.Context, dto.BookingListQuery) ([]models.Booking, int64, error) {
	return []models.Booking{}, 0, nil
}

func (f *fakeBookings) DeleteBooking(context.Context, string) error { return nil }

func (f *fakeBookings) Dashboard(context.Context) (*dto.DashboardSummary, error) {
	return &dto.DashboardSummary{}, nil
}

func bookingRouter(f *fakeBookings) *gin.Engine {
	r := gin.New()
	r.Use(middleware.LocaleMiddleware(logger.Nop{}))
	h := NewBookingController(f, logger.Nop{})
	r.POST("/api/v1/bookings", h.Create)
	r.PUT("/api/v1/admin/bookings/status", h.UpdateStatus)
	r.PUT("/api/v1/admin/bookings/:id/status", h.UpdateStatus)
	r.GET("/api/v1/admin/bookings/:id", h.Detail)
	return r
}

const validBooking = `{
	"apartment_id": "apt-1",
	"guest_name": "Ana",
	"guest_email": "ana@example.com",
	"guest_phone": "+5492610000000",
	"check_in": "2025-06-01",
	"check_out": "2025-06-04",
	"total_guests": 2,
	"total_price": 240
}`

func newJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serveRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func do(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := newJSONRequest(method, path, body)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serveRequest(r, req)
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestCreateBookingSuccess(t *testing.T) {
	f := &fakeBookings{created: &models.Booking{ID: "b1", Status: models.BookingPending}}
	w := do(bookingRouter(f), http.MethodPost, "/api/v1/bookings", validBooking,
		&http.Cookie{Name: "NEXT_LOCALE", Value: "en"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "b1", resp.Booking.ID)
	assert.Equal(t, dto.DeliverySent, resp.Emails.Host.Status)
	assert.Equal(t, "en", f.gotLocale)
}

func TestCreateBookingFailures(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeBookings
		body    string
		code    int
		message string
	}{
		{
			name:    "missing total price",
			fake:    &fakeBookings{},
			body:    strings.Replace(validBooking, `"total_price": 240`, `"notes": ""`, 1),
			code:    http.StatusBadRequest,
			message: "Missing required field: total_price",
		},
		{
			name:    "missing apartment first",
			fake:    &fakeBookings{},
			body:    `{"guest_name": "Ana"}`,
			code:    http.StatusBadRequest,
			message: "Missing required field: apartment_id",
		},
		{
			name:    "check out not after check in",
			fake:    &fakeBookings{},
			body:    strings.Replace(validBooking, "2025-06-04", "2025-06-01", 1),
			code:    http.StatusBadRequest,
			message: "check_out must be after check_in",
		},
		{
			name:    "malformed json",
			fake:    &fakeBookings{},
			body:    `{"apartment_id":`,
			code:    http.StatusInternalServerError,
			message: "Internal server error",
		},
		{
			name:    "nothing created",
			fake:    &fakeBookings{},
			body:    validBooking,
			code:    http.StatusInternalServerError,
			message: "Failed to create booking",
		},
		{
			name:    "apartment missing",
			fake:    &fakeBookings{createErr: apperrors.ErrApartmentNotFound},
			body:    validBooking,
			code:    http.StatusNotFound,
			message: "Apartment not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(bookingRouter(tt.fake), http.MethodPost, "/api/v1/bookings", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.message, errorMessage(t, w))
		})
	}
}

func TestCreateBookingInvalidLocaleCookieFallsBack(t *testing.T) {
	f := &fakeBookings{created: &models.Booking{ID: "b1"}}
	w := do(bookingRouter(f), http.MethodPost, "/api/v1/bookings", validBooking,
		&http.Cookie{Name: "NEXT_LOCALE", Value: "xx-invalid-!!"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "es", f.gotLocale)
}

func TestUpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		fake    *fakeBookings
		code    int
		message string
	}{
		{"missing id", "/api/v1/admin/bookings/status", `{"status":"confirmed"}`, &fakeBookings{}, http.StatusBadRequest, "Missing required field: id"},
		{"missing status", "/api/v1/admin/bookings/status", `{"id":"b1"}`, &fakeBookings{}, http.StatusBadRequest, "Missing required field: status"},
		{"bad body", "/api/v1/admin/bookings/status", `nope`, &fakeBookings{}, http.StatusBadRequest, "Invalid request body"},
		{"unknown status", "/api/v1/admin/bookings/status", `{"id":"b1","status":"archived"}`, &fakeBookings{}, http.StatusBadRequest, ""},
		{"not found", "/api/v1/admin/bookings/b1/status", `{"status":"confirmed"}`, &fakeBookings{updateErr: apperrors.ErrBookingNotFound}, http.StatusNotFound, "Booking not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(bookingRouter(tt.fake), http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, errorMessage(t, w))
			}
		})
	}

	f := &fakeBookings{}
	w := do(bookingRouter(f), http.MethodPut, "/api/v1/admin/bookings/b7/status", `{"id":"ignored","status":"confirmed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.UpdateBookingStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b7", resp.Booking.ID)
	assert.Equal(t, models.BookingConfirmed, f.gotStatus)
}

func TestBookingDetailNotFound(t *testing.T) {
	w := do(bookingRouter(&fakeBookings{}), http.MethodGet, "/api/v1/admin/bookings/zzz", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found", errorMessage(t, w))
}

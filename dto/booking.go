package dto

import "rentals/models"

// CreateBookingRequest là body của form đặt căn hộ. Thứ tự field là thứ tự
// kiểm tra trường bắt buộc.
type CreateBookingRequest struct {
	ApartmentID string  `json:"apartment_id" validate:"required"`
	GuestName   string  `json:"guest_name" validate:"required,max=200"`
	GuestEmail  string  `json:"guest_email" validate:"required,email"`
	GuestPhone  string  `json:"guest_phone" validate:"required,max=40"`
	CheckIn     string  `json:"check_in" validate:"required"`
	CheckOut    string  `json:"check_out" validate:"required"`
	TotalGuests int     `json:"total_guests" validate:"required,min=1"`
	TotalPrice  float64 `json:"total_price" validate:"required,gt=0"`
	Notes       string  `json:"notes" validate:"max=2000"`
	// Status bị bỏ qua; booking mới luôn là pending
	Status string `json:"status,omitempty"`
}

// DeliveryResult là kết quả gửi một email
type DeliveryResult struct {
	Recipient string `json:"recipient"`
	// Status: sent | queued | skipped | failed
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	DeliverySent    = "sent"
	DeliveryQueued  = "queued"
	DeliverySkipped = "skipped"
	DeliveryFailed  = "failed"
)

type EmailOutcome struct {
	Host  DeliveryResult `json:"host"`
	Guest DeliveryResult `json:"guest"`
}

type CreateBookingResponse struct {
	Success bool            `json:"success"`
	Booking *models.Booking `json:"booking"`
	Emails  EmailOutcome    `json:"emails"`
}

type UpdateBookingStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateBookingStatusResponse struct {
	Booking *models.Booking `json:"booking"`
	Warning string          `json:"warning,omitempty"`
}

type BookingListQuery struct {
	Status      string `form:"status"`
	ApartmentID string `form:"apartment_id"`
	PageQuery
}

type DashboardSummary struct {
	ActiveApartments   int64                          `json:"active_apartments"`
	InactiveApartments int64                          `json:"inactive_apartments"`
	Bookings           map[models.BookingStatus]int64 `json:"bookings"`
	UpcomingCheckIns   []models.Booking               `json:"upcoming_check_ins"`
}

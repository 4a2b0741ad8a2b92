package builders

import (
	"strings"

	"rentals/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo instance mới của BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{},
	}
}

// WithApartment thêm căn hộ được đặt
func (b *BookingBuilder) WithApartment(apartmentID string) *BookingBuilder {
	b.booking.ApartmentID = strings.TrimSpace(apartmentID)
	return b
}

// WithGuestInfo thêm thông tin khách
func (b *BookingBuilder) WithGuestInfo(guestName, guestPhone, guestEmail string) *BookingBuilder {
	b.booking.GuestName = strings.TrimSpace(guestName)
	b.booking.GuestPhone = strings.TrimSpace(guestPhone)
	b.booking.GuestEmail = strings.ToLower(strings.TrimSpace(guestEmail))
	return b
}

// WithStay thêm ngày nhận và trả phòng
func (b *BookingBuilder) WithStay(checkIn, checkOut models.Date) *BookingBuilder {
	b.booking.CheckIn = checkIn
	b.booking.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithGuests(total int) *BookingBuilder {
	b.booking.TotalGuests = total
	return b
}

// WithTotalPrice thêm tổng giá
func (b *BookingBuilder) WithTotalPrice(totalPrice float64) *BookingBuilder {
	b.booking.TotalPrice = totalPrice
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.booking.Notes = strings.TrimSpace(notes)
	return b
}

// Build tạo booking hoàn chỉnh. Booking mới luôn ở trạng thái pending.
func (b *BookingBuilder) Build() *models.Booking {
	b.booking.Status = models.BookingPending
	return b.booking
}

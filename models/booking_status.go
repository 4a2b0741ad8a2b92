package models

import "fmt"

// BookingStatus trạng thái của một yêu cầu đặt căn hộ
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// ParseBookingStatus trả về lỗi nếu status nằm ngoài tập cho phép
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %q, must be one of pending, confirmed, cancelled", s)
	}
	return status, nil
}

// Blocks reports whether a booking in this status hides the apartment from
// overlapping searches. Pending bookings are requests, not holds.
func (s BookingStatus) Blocks() bool {
	return s == BookingConfirmed
}

// Transition mô tả việc chuyển trạng thái. Mọi chuyển đổi đều được chấp nhận;
// Warning chỉ ghi nhận những chuyển đổi bất thường để admin kiểm tra lại.
type Transition struct {
	From BookingStatus
	To   BookingStatus
}

func (t Transition) Warning() string {
	switch {
	case t.From == BookingCancelled && t.To == BookingConfirmed:
		return "booking was cancelled and is now confirmed again"
	case t.From == BookingConfirmed && t.To == BookingPending:
		return "confirmed booking moved back to pending and no longer blocks its dates"
	}
	return ""
}

// AffectsAvailability is true when the change adds or removes a date block.
func (t Transition) AffectsAvailability() bool {
	return t.From.Blocks() != t.To.Blocks()
}

package notification

import (
	"fmt"
	"time"

	"rentals/constants"
	"rentals/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Khóa lưu role của session websocket, do controller gán khi upgrade
const SessionRoleKey = "role"

type Service interface {
	SendMessage(message []byte) error
}

// MelodyService chỉ gửi tới các session admin
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message []byte) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.BroadcastFilter(message, func(session *melody.Session) bool {
		role, ok := session.Get(SessionRoleKey)
		return ok && role == constants.RoleAdmin
	})
}

// Nop dùng khi websocket bị tắt hoặc trong test
type Nop struct{}

func (Nop) SendMessage([]byte) error { return nil }

const (
	EventBookingCreated = "booking.created"
	EventBookingStatus  = "booking.status"
)

// Event là nội dung JSON gửi cho admin
type Event struct {
	Type        string               `json:"type"`
	BookingID   string               `json:"booking_id"`
	ApartmentID string               `json:"apartment_id"`
	Apartment   string               `json:"apartment,omitempty"`
	GuestName   string               `json:"guest_name"`
	CheckIn     models.Date          `json:"check_in"`
	CheckOut    models.Date          `json:"check_out"`
	Status      models.BookingStatus `json:"status"`
	Previous    models.BookingStatus `json:"previous,omitempty"`
	Message     string               `json:"message"`
	At          time.Time            `json:"at"`
}

type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(eventType string, booking *models.Booking) *MessageBuilder {
	e := Event{
		Type:        eventType,
		BookingID:   booking.ID,
		ApartmentID: booking.ApartmentID,
		GuestName:   booking.GuestName,
		CheckIn:     booking.CheckIn,
		CheckOut:    booking.CheckOut,
		Status:      booking.Status,
		At:          time.Now(),
	}
	if booking.Apartment != nil {
		e.Apartment = booking.Apartment.Title
	}
	return &MessageBuilder{event: e}
}

func (b *MessageBuilder) WithPrevious(status models.BookingStatus) *MessageBuilder {
	b.event.Previous = status
	return b
}

func (b *MessageBuilder) Build() ([]byte, error) {
	e := b.event
	name := e.Apartment
	if name == "" {
		name = e.ApartmentID
	}
	switch e.Type {
	case EventBookingCreated:
		e.Message = fmt.Sprintf("🔔 %s pidió %s del %s al %s", e.GuestName, name, e.CheckIn, e.CheckOut)
	case EventBookingStatus:
		e.Message = fmt.Sprintf("🔔 Reserva de %s en %s: %s → %s", e.GuestName, name, e.Previous, e.Status)
	}
	return json.Marshal(e)
}

package services

import (
	"bytes"
	"context"
	"errors"
	"net/mail"
	"testing"

	"rentals/config"
	"rentals/constants"
	"rentals/dto"
	"rentals/models"
	"rentals/services/logger"
	"rentals/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []MailMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg MailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type recordingPublisher struct {
	published []MailMessage
}

func (p *recordingPublisher) Publish(_ context.Context, msg MailMessage) error {
	p.published = append(p.published, msg)
	return nil
}

func mailBooking() (*models.Booking, *models.Apartment) {
	apt := testutil.NewApartment(testutil.Titled("Loft Chacras"))
	b := &models.Booking{
		ID:          "b-1",
		ApartmentID: apt.ID,
		GuestName:   "Ana",
		GuestEmail:  "ana@example.com",
		GuestPhone:  "+5492610000000",
		CheckIn:     testutil.D("2025-04-01"),
		CheckOut:    testutil.D("2025-04-05"),
		TotalGuests: 2,
		TotalPrice:  200,
		Status:      models.BookingPending,
	}
	return b, apt
}

func TestMailServiceSMTPLocalized(t *testing.T) {
	sender := &recordingSender{}
	svc := NewMailService(MailServiceOptions{
		Config: config.MailConfig{Delivery: constants.MailDeliverySMTP},
		Sender: sender,
		Logger: logger.Nop{},
	})
	booking, apt := mailBooking()

	outcome := svc.BookingRequested(context.Background(), booking, apt, "en")
	assert.Equal(t, dto.DeliveryResult{Recipient: "host@example.com", Status: dto.DeliverySent}, outcome.Host)
	assert.Equal(t, dto.DeliveryResult{Recipient: "ana@example.com", Status: dto.DeliverySent}, outcome.Guest)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "New booking request: Loft Chacras", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "Ana")
	assert.Equal(t, "We received your request for Loft Chacras", sender.sent[1].Subject)

	// locale lạ dùng tiếng Tây Ban Nha
	sender.sent = nil
	svc.BookingRequested(context.Background(), booking, apt, "fr")
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "Nueva solicitud de reserva: Loft Chacras", sender.sent[0].Subject)
}

func TestMailServiceFailureIsReportedNotReturned(t *testing.T) {
	svc := NewMailService(MailServiceOptions{
		Config: config.MailConfig{Delivery: constants.MailDeliverySMTP},
		Sender: &recordingSender{err: errors.New("smtp: 421 try later")},
		Logger: logger.Nop{},
	})
	booking, apt := mailBooking()

	outcome := svc.BookingRequested(context.Background(), booking, apt, "es")
	assert.Equal(t, dto.DeliveryFailed, outcome.Host.Status)
	assert.Equal(t, "delivery failed", outcome.Host.Error)
	assert.Equal(t, dto.DeliveryFailed, outcome.Guest.Status)
}

func TestMailServiceQueueMode(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewMailService(MailServiceOptions{
		Config:    config.MailConfig{Delivery: constants.MailDeliveryQueue},
		Publisher: publisher,
		Logger:    logger.Nop{},
	})
	booking, apt := mailBooking()

	outcome := svc.BookingRequested(context.Background(), booking, apt, "es")
	assert.Equal(t, dto.DeliveryQueued, outcome.Host.Status)
	assert.Equal(t, dto.DeliveryQueued, outcome.Guest.Status)
	assert.Len(t, publisher.published, 2)
}

func TestMailServiceMissingTransportFallsBackToNone(t *testing.T) {
	svc := NewMailService(MailServiceOptions{
		Config: config.MailConfig{Delivery: constants.MailDeliveryQueue},
		Logger: logger.Nop{},
	})
	booking, apt := mailBooking()

	outcome := svc.BookingRequested(context.Background(), booking, apt, "es")
	assert.Equal(t, dto.DeliverySkipped, outcome.Host.Status)
	assert.Equal(t, dto.DeliverySkipped, outcome.Guest.Status)
}

func TestMailServiceMissingRecipient(t *testing.T) {
	sender := &recordingSender{}
	svc := NewMailService(MailServiceOptions{
		Config: config.MailConfig{Delivery: constants.MailDeliverySMTP},
		Sender: sender,
		Logger: logger.Nop{},
	})
	booking, apt := mailBooking()
	apt.ContactEmail = ""

	outcome := svc.BookingRequested(context.Background(), booking, apt, "es")
	assert.Equal(t, dto.DeliverySkipped, outcome.Host.Status)
	assert.Equal(t, "no recipient", outcome.Host.Error)
	assert.Equal(t, dto.DeliverySent, outcome.Guest.Status)
	assert.Len(t, sender.sent, 1)
}

func TestMailServiceStatusChanged(t *testing.T) {
	sender := &recordingSender{}
	svc := NewMailService(MailServiceOptions{
		Config: config.MailConfig{Delivery: constants.MailDeliverySMTP},
		Sender: sender,
		Logger: logger.Nop{},
	})
	booking, apt := mailBooking()
	booking.Apartment = apt

	result := svc.StatusChanged(context.Background(), booking, "es")
	assert.Equal(t, dto.DeliverySkipped, result.Status)
	assert.Empty(t, sender.sent)

	booking.Status = models.BookingConfirmed
	result = svc.StatusChanged(context.Background(), booking, "es")
	assert.Equal(t, dto.DeliverySent, result.Status)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Tu reserva en Loft Chacras fue actualizada", sender.sent[0].Subject)
}

func TestMailServicePendingDigest(t *testing.T) {
	sender := &recordingSender{}
	svc := NewMailService(MailServiceOptions{
		Config: config.MailConfig{Delivery: constants.MailDeliverySMTP, AdminAddress: "admin@example.com"},
		Sender: sender,
		Logger: logger.Nop{},
	})
	booking, apt := mailBooking()
	booking.Apartment = apt

	result, err := svc.PendingDigest(context.Background(), []models.Booking{*booking})
	require.NoError(t, err)
	assert.Equal(t, dto.DeliverySent, result.Status)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "admin@example.com", sender.sent[0].To)
	assert.Equal(t, "1 pending booking(s)", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "Loft Chacras")
}

func TestDecodeMailMessage(t *testing.T) {
	msg, err := DecodeMailMessage([]byte(`{"to":"ana@example.com","subject":"Hola","html":"<p>x</p>"}`))
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", msg.To)

	_, err = DecodeMailMessage([]byte(`{"subject":"Hola"}`))
	assert.Error(t, err)
	_, err = DecodeMailMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestBuildMessageKeepsTitleInSubject(t *testing.T) {
	msg := MailMessage{
		To:      "guest@example.com",
		Subject: "Booking: Sunny loft\r\nBcc: victim@example.com\nX-Extra: 1",
		HTML:    "<p>ok</p>",
	}

	parsed, err := mail.ReadMessage(bytes.NewReader(buildMessage("noreply@example.com", msg)))
	require.NoError(t, err)
	assert.Equal(t, "Booking: Sunny loft Bcc: victim@example.com X-Extra: 1", parsed.Header.Get("Subject"))
	assert.Empty(t, parsed.Header.Get("Bcc"))
	assert.Empty(t, parsed.Header.Get("X-Extra"))
	assert.Equal(t, "guest@example.com", parsed.Header.Get("To"))
}

package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"rentals/config"
	"rentals/constants"
	"rentals/dto"
	"rentals/models"
	"rentals/services/logger"
)

// MailMessage là một email đã render, cũng là payload của hàng đợi booking_emails
type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// MailSender gửi email ngay lập tức
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailPublisher đẩy email vào hàng đợi để worker gửi sau
type MailPublisher interface {
	Publish(ctx context.Context, msg MailMessage) error
}

// SMTPSender gửi email qua SMTP với PlainAuth
type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, []string{msg.To}, buildMessage(s.from, msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// headerValue gộp mọi xuống dòng thành khoảng trắng để giá trị không mở được header mới
func headerValue(v string) string {
	return strings.Join(strings.FieldsFunc(v, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}

// buildMessage ghép header và nội dung HTML của email
func buildMessage(from string, msg MailMessage) []byte {
	header := strings.Join([]string{
		"From: " + headerValue(from),
		"To: " + headerValue(msg.To),
		"Subject: " + headerValue(msg.Subject),
		"MIME-version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}, "\r\n")
	return []byte(header + "\r\n\r\n" + msg.HTML)
}

// MailService render và gửi email theo chế độ MAIL_DELIVERY (smtp | queue | none)
type MailService struct {
	delivery     string
	adminAddress string
	sender       MailSender
	publisher    MailPublisher
	logger       logger.Logger
}

type MailServiceOptions struct {
	Config    config.MailConfig
	Sender    MailSender
	Publisher MailPublisher
	Logger    logger.Logger
}

func NewMailService(opts MailServiceOptions) *MailService {
	delivery := opts.Config.Delivery
	switch {
	case delivery == constants.MailDeliverySMTP && opts.Sender == nil,
		delivery == constants.MailDeliveryQueue && opts.Publisher == nil:
		opts.Logger.Warn("Chế độ gửi mail %q thiếu kết nối, chuyển sang none", delivery)
		delivery = constants.MailDeliveryNone
	case delivery == "":
		delivery = constants.MailDeliveryNone
	}
	return &MailService{
		delivery:     delivery,
		adminAddress: opts.Config.AdminAddress,
		sender:       opts.Sender,
		publisher:    opts.Publisher,
		logger:       opts.Logger,
	}
}

// deliver gửi hoặc xếp hàng một email; lỗi được ghi vào kết quả, không trả về
func (s *MailService) deliver(ctx context.Context, msg MailMessage) dto.DeliveryResult {
	result := dto.DeliveryResult{Recipient: msg.To}
	if msg.To == "" {
		result.Status = dto.DeliverySkipped
		result.Error = "no recipient"
		return result
	}

	var err error
	switch s.delivery {
	case constants.MailDeliverySMTP:
		err = s.sender.Send(ctx, msg)
		result.Status = dto.DeliverySent
	case constants.MailDeliveryQueue:
		err = s.publisher.Publish(ctx, msg)
		result.Status = dto.DeliveryQueued
	default:
		result.Status = dto.DeliverySkipped
		return result
	}

	if err != nil {
		s.logger.Error("Gửi email tới %s thất bại: %v", msg.To, err)
		result.Status = dto.DeliveryFailed
		result.Error = "delivery failed"
	}
	return result
}

func (s *MailService) render(ctx context.Context, name, to, locale string, data mailData) dto.DeliveryResult {
	subject, html, err := renderMail(name, locale, data)
	if err != nil {
		s.logger.Error("Không thể render email %s: %v", name, err)
		return dto.DeliveryResult{Recipient: to, Status: dto.DeliveryFailed, Error: "render failed"}
	}
	return s.deliver(ctx, MailMessage{To: to, Subject: subject, HTML: html})
}

func apartmentOf(booking *models.Booking, apartment *models.Apartment) *models.Apartment {
	if apartment != nil {
		return apartment
	}
	if booking.Apartment != nil {
		return booking.Apartment
	}
	return &models.Apartment{ID: booking.ApartmentID, Title: booking.ApartmentID}
}

// BookingRequested báo cho chủ nhà và khách về một yêu cầu đặt mới
func (s *MailService) BookingRequested(ctx context.Context, booking *models.Booking, apartment *models.Apartment, locale string) dto.EmailOutcome {
	apartment = apartmentOf(booking, apartment)
	data := mailData{Booking: booking, Apartment: apartment, Status: booking.Status}
	return dto.EmailOutcome{
		Host:  s.render(ctx, "host_request", apartment.ContactEmail, locale, data),
		Guest: s.render(ctx, "guest_request", booking.GuestEmail, locale, data),
	}
}

// StatusChanged báo cho khách khi booking được xác nhận hoặc bị hủy
func (s *MailService) StatusChanged(ctx context.Context, booking *models.Booking, locale string) dto.DeliveryResult {
	if booking.Status != models.BookingConfirmed && booking.Status != models.BookingCancelled {
		return dto.DeliveryResult{Recipient: booking.GuestEmail, Status: dto.DeliverySkipped}
	}
	data := mailData{Booking: booking, Apartment: apartmentOf(booking, nil), Status: booking.Status}
	return s.render(ctx, "guest_status", booking.GuestEmail, locale, data)
}

// PendingDigest gửi danh sách booking đang chờ cho admin
func (s *MailService) PendingDigest(ctx context.Context, bookings []models.Booking) (dto.DeliveryResult, error) {
	subject, html, err := renderDigest(bookings)
	if err != nil {
		return dto.DeliveryResult{}, err
	}
	return s.deliver(ctx, MailMessage{To: s.adminAddress, Subject: subject, HTML: html}), nil
}

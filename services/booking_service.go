package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentals/commands"
	"rentals/constants"
	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/repository"
	"rentals/services/logger"
	"rentals/services/notification"
)

// BookingStore là phần lưu trữ booking mà service cần
type BookingStore interface {
	commands.BookingWriter
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, int64, error)
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)
	UpcomingCheckIns(ctx context.Context, from, to models.Date) ([]models.Booking, error)
	ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
}

// BookingApartments tra cứu căn hộ cho booking và dashboard
type BookingApartments interface {
	FindByID(ctx context.Context, id string) (*models.Apartment, error)
	CountByActive(ctx context.Context) (active, inactive int64, err error)
}

// BookingMailer gửi email liên quan tới booking; lỗi nằm trong kết quả, không trả về
type BookingMailer interface {
	BookingRequested(ctx context.Context, booking *models.Booking, apartment *models.Apartment, locale string) dto.EmailOutcome
	StatusChanged(ctx context.Context, booking *models.Booking, locale string) dto.DeliveryResult
}

type BookingServiceOptions struct {
	Bookings   BookingStore
	Apartments BookingApartments
	Mailer     BookingMailer
	Notifier   notification.Service
	Cache      *Cache
	Logger     logger.Logger
}

// BookingService xử lý yêu cầu đặt căn hộ và quản lý booking của admin
type BookingService struct {
	bookings   BookingStore
	apartments BookingApartments
	mailer     BookingMailer
	notifier   notification.Service
	cache      *Cache
	logger     logger.Logger
	now        func() time.Time
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notification.Nop{}
	}
	return &BookingService{
		bookings:   opts.Bookings,
		apartments: opts.Apartments,
		mailer:     opts.Mailer,
		notifier:   notifier,
		cache:      opts.Cache,
		logger:     opts.Logger,
		now:        time.Now,
	}
}

// CreateBooking lưu booking (luôn pending), tải lại kèm căn hộ rồi gửi email cho
// chủ nhà và khách. Email lỗi không làm hỏng việc tạo booking.
func (s *BookingService) CreateBooking(ctx context.Context, booking *models.Booking, locale string) (*models.Booking, dto.EmailOutcome, error) {
	booking.Status = models.BookingPending

	apartment, err := s.apartments.FindByID(ctx, booking.ApartmentID)
	if err != nil {
		return nil, dto.EmailOutcome{}, err
	}
	if !apartment.IsActive {
		return nil, dto.EmailOutcome{}, apperrors.ErrApartmentNotFound
	}

	if err := commands.NewCreateBookingCommand(booking, s.bookings).Execute(ctx); err != nil {
		return nil, dto.EmailOutcome{}, fmt.Errorf("create booking: %w", err)
	}
	if booking.ID == "" {
		return nil, dto.EmailOutcome{}, apperrors.ErrBookingNotCreated
	}

	created, err := s.bookings.FindByID(ctx, booking.ID)
	if errors.Is(err, apperrors.ErrBookingNotFound) {
		return nil, dto.EmailOutcome{}, apperrors.ErrBookingNotCreated
	}
	if err != nil {
		return nil, dto.EmailOutcome{}, fmt.Errorf("reload booking: %w", err)
	}
	if created.Apartment == nil {
		return nil, dto.EmailOutcome{}, apperrors.ErrApartmentNotFound
	}

	s.logger.Info("Booking %s tạo mới cho căn hộ %s (%s..%s)", created.ID, created.ApartmentID, created.CheckIn, created.CheckOut)

	emails := s.mailer.BookingRequested(ctx, created, created.Apartment, locale)
	s.notify(notification.NewMessageBuilder(notification.EventBookingCreated, created))
	if err := s.cache.Delete(ctx, constants.CacheDashboard); err != nil {
		s.logger.Warn("Không thể xóa cache dashboard: %v", err)
	}
	return created, emails, nil
}

// UpdateStatus chấp nhận mọi chuyển trạng thái; chuyển bất thường trả về warning
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, locale string) (*dto.UpdateBookingStatusResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	cmd := commands.NewUpdateBookingStatusCommand(id, status, s.bookings)
	if err := cmd.Execute(ctx); err != nil {
		return nil, err
	}

	warning := cmd.Transition.Warning()
	if warning != "" {
		s.logger.Warn("Booking %s: %s (%s -> %s)", id, warning, cmd.Transition.From, cmd.Transition.To)
	}

	if cmd.Transition.AffectsAvailability() {
		invalidateApartments(ctx, s.cache, s.logger, cmd.Booking.ApartmentID)
	} else if err := s.cache.Delete(ctx, constants.CacheDashboard); err != nil {
		s.logger.Warn("Không thể xóa cache dashboard: %v", err)
	}

	if cmd.Transition.From != cmd.Transition.To {
		s.notify(notification.NewMessageBuilder(notification.EventBookingStatus, cmd.Booking).WithPrevious(cmd.Transition.From))
		if result := s.mailer.StatusChanged(ctx, cmd.Booking, locale); result.Status == dto.DeliveryFailed {
			s.logger.Warn("Email trạng thái cho booking %s không gửi được", id)
		}
	}

	return &dto.UpdateBookingStatusResponse{Booking: cmd.Booking, Warning: warning}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context, query dto.BookingListQuery) ([]models.Booking, int64, error) {
	page := query.PageQuery.Normalize()
	filter := repository.BookingFilter{
		ApartmentID: query.ApartmentID,
		Page:        repository.Page{Page: page.Page, Limit: page.Limit},
	}
	if query.Status != "" {
		status, err := models.ParseBookingStatus(query.Status)
		if err != nil {
			return nil, 0, apperrors.ErrInvalidStatus
		}
		filter.Status = status
	}
	return s.bookings.List(ctx, filter)
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	cmd := commands.NewDeleteBookingCommand(id, s.bookings)
	if err := cmd.Execute(ctx); err != nil {
		return err
	}
	if cmd.Deleted.Status.Blocks() {
		invalidateApartments(ctx, s.cache, s.logger, cmd.Deleted.ApartmentID)
	} else if err := s.cache.Delete(ctx, constants.CacheDashboard); err != nil {
		s.logger.Warn("Không thể xóa cache dashboard: %v", err)
	}
	s.logger.Info("Đã xóa booking %s", id)
	return nil
}

// Dashboard tổng hợp số liệu cho trang admin, cache 1 phút
func (s *BookingService) Dashboard(ctx context.Context) (*dto.DashboardSummary, error) {
	var cached dto.DashboardSummary
	if found, err := s.cache.Get(ctx, constants.CacheDashboard, &cached); err == nil && found {
		return &cached, nil
	}

	active, inactive, err := s.apartments.CountByActive(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	today := models.DateOf(s.now())
	upcoming, err := s.bookings.UpcomingCheckIns(ctx, today, models.DateOf(today.AddDate(0, 0, 7)))
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{
		ActiveApartments:   active,
		InactiveApartments: inactive,
		Bookings:           counts,
		UpcomingCheckIns:   upcoming,
	}
	if err := s.cache.Set(ctx, constants.CacheDashboard, summary, constants.DashboardCacheTTL); err != nil {
		s.logger.Warn("Không thể lưu cache dashboard: %v", err)
	}
	return summary, nil
}

// PendingBookings dùng cho email tổng hợp hằng ngày
func (s *BookingService) PendingBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.ListByStatus(ctx, models.BookingPending)
}

func (s *BookingService) notify(builder *notification.MessageBuilder) {
	message, err := builder.Build()
	if err != nil {
		s.logger.Error("Không thể tạo thông báo: %v", err)
		return
	}
	if err := s.notifier.SendMessage(message); err != nil {
		s.logger.Warn("Không thể gửi thông báo websocket: %v", err)
	}
}

package services

import (
	"context"
	"errors"

	"rentals/builders"
	"rentals/constants"
	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/repository"
	"rentals/services/logger"
	"rentals/validator"
)

// ApartmentStore là phần lưu trữ căn hộ mà service cần
type ApartmentStore interface {
	List(ctx context.Context, filter repository.ApartmentFilter) ([]models.Apartment, int64, error)
	FindByID(ctx context.Context, id string) (*models.Apartment, error)
	ListLocated(ctx context.Context) ([]models.Apartment, error)
	Create(ctx context.Context, apartment *models.Apartment) error
	Save(ctx context.Context, apartment *models.Apartment) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// CalendarBookings trả về booking confirmed của một căn hộ trong khoảng ngày
type CalendarBookings interface {
	ConfirmedInRange(ctx context.Context, apartmentID string, from, to models.Date) ([]models.Booking, error)
}

// CalendarOverrides trả về khoảng khóa lịch của một căn hộ trong khoảng ngày
type CalendarOverrides interface {
	UnavailableInRange(ctx context.Context, apartmentID string, from, to models.Date) ([]models.ApartmentAvailability, error)
}

type ApartmentServiceOptions struct {
	Apartments ApartmentStore
	Bookings   CalendarBookings
	Overrides  CalendarOverrides
	Cache      *Cache
	Logger     logger.Logger
}

type ApartmentService struct {
	apartments ApartmentStore
	bookings   CalendarBookings
	overrides  CalendarOverrides
	cache      *Cache
	logger     logger.Logger
}

func NewApartmentService(opts ApartmentServiceOptions) *ApartmentService {
	return &ApartmentService{
		apartments: opts.Apartments,
		bookings:   opts.Bookings,
		overrides:  opts.Overrides,
		cache:      opts.Cache,
		logger:     opts.Logger,
	}
}

// GetPublic trả về căn hộ đang hoạt động; căn hộ bị ẩn coi như không tồn tại
func (s *ApartmentService) GetPublic(ctx context.Context, id string) (*dto.ApartmentView, error) {
	cacheKey := constants.CacheApartmentPrefix + id
	var cached models.Apartment
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		view := NewApartmentView(&cached)
		return &view, nil
	}

	apartment, err := s.apartments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !apartment.IsActive {
		return nil, apperrors.ErrApartmentNotFound
	}

	if err := s.cache.Set(ctx, cacheKey, apartment, constants.ApartmentCacheTTL); err != nil {
		s.logger.Warn("Lỗi khi lưu cache căn hộ %s: %v", id, err)
	}
	view := NewApartmentView(apartment)
	return &view, nil
}

func (s *ApartmentService) Get(ctx context.Context, id string) (*models.Apartment, error) {
	return s.apartments.FindByID(ctx, id)
}

func (s *ApartmentService) List(ctx context.Context, query dto.ApartmentListQuery) ([]models.Apartment, int64, error) {
	page := query.PageQuery.Normalize()
	return s.apartments.List(ctx, repository.ApartmentFilter{
		Active: query.Active,
		Page:   repository.Page{Page: page.Page, Limit: page.Limit},
	})
}

// build áp request lên căn hộ: kiểm tra characteristics, ảnh đại diện và tọa độ
func (s *ApartmentService) build(existing *models.Apartment, req *dto.ApartmentRequest) (*models.Apartment, error) {
	characteristics, err := validator.ValidateCharacteristics(req.Characteristics)
	if err != nil {
		return nil, err
	}

	builder := builders.NewApartmentBuilder(existing).FromRequest(req)
	if req.Characteristics != nil || existing == nil {
		builder.WithCharacteristics(characteristics)
	}
	apartment, err := builder.Build()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeImageIndex, "Invalid field: principal_image_index", err)
	}

	ApplyLocation(apartment)
	if apartment.GoogleMapsURL != "" && apartment.Latitude == nil {
		s.logger.Warn("Không đọc được tọa độ từ google_maps_url của căn hộ %q", apartment.Title)
	}
	return apartment, nil
}

func (s *ApartmentService) Create(ctx context.Context, req *dto.ApartmentRequest) (*models.Apartment, error) {
	apartment, err := s.build(nil, req)
	if err != nil {
		return nil, err
	}
	if err := s.apartments.Create(ctx, apartment); err != nil {
		return nil, err
	}
	s.logger.Info("Đã tạo căn hộ %s", apartment.ID)
	invalidateApartments(ctx, s.cache, s.logger, apartment.ID)
	return apartment, nil
}

func (s *ApartmentService) Update(ctx context.Context, id string, req *dto.ApartmentRequest) (*models.Apartment, error) {
	existing, err := s.apartments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apartment, err := s.build(existing, req)
	if err != nil {
		return nil, err
	}
	if err := s.apartments.Save(ctx, apartment); err != nil {
		return nil, err
	}
	invalidateApartments(ctx, s.cache, s.logger, id)
	return apartment, nil
}

func (s *ApartmentService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.apartments.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info("Căn hộ %s is_active=%t", id, active)
	invalidateApartments(ctx, s.cache, s.logger, id)
	return nil
}

// Delete xóa căn hộ cùng booking và khóa lịch của nó
func (s *ApartmentService) Delete(ctx context.Context, id string) error {
	if err := s.apartments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Đã xóa căn hộ %s", id)
	invalidateApartments(ctx, s.cache, s.logger, id)
	return nil
}

// MapMarkers gom các căn hộ đang hoạt động có tọa độ theo ô geohash
func (s *ApartmentService) MapMarkers(ctx context.Context, precision uint) ([]dto.MapMarker, error) {
	apartments, err := s.apartments.ListLocated(ctx)
	if err != nil {
		return nil, err
	}
	return ClusterMarkers(apartments, precision), nil
}

// Calendar trả về các khoảng ngày không đặt được của một căn hộ đang hoạt động
func (s *ApartmentService) Calendar(ctx context.Context, id string, from, to models.Date) (*dto.CalendarResponse, error) {
	apartment, err := s.apartments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !apartment.IsActive {
		return nil, apperrors.ErrApartmentNotFound
	}

	resp := &dto.CalendarResponse{ApartmentID: id, From: from, To: to, Blocked: []dto.BlockedRange{}}

	bookings, err := s.bookings.ConfirmedInRange(ctx, id, from, to)
	if err != nil {
		s.logger.Error("Không thể lấy booking của căn hộ %s: %v", id, err)
		resp.Degraded = true
	}
	for _, b := range bookings {
		resp.Blocked = append(resp.Blocked, dto.BlockedRange{Start: b.CheckIn, End: b.CheckOut, Source: "booking"})
	}

	overrides, err := s.overrides.UnavailableInRange(ctx, id, from, to)
	switch {
	case errors.Is(err, apperrors.ErrTableMissing):
	case err != nil:
		s.logger.Error("Không thể lấy lịch khóa của căn hộ %s: %v", id, err)
		resp.Degraded = true
	}
	for _, o := range overrides {
		resp.Blocked = append(resp.Blocked, dto.BlockedRange{Start: o.StartDate, End: o.EndDate, Source: "override"})
	}
	return resp, nil
}

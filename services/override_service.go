package services

import (
	"context"
	"strings"

	"rentals/dto"
	"rentals/models"
	"rentals/services/logger"
	"rentals/validator"
)

// OverrideStore lưu các khoảng khóa/mở lịch thủ công
type OverrideStore interface {
	ListByApartment(ctx context.Context, apartmentID string) ([]models.ApartmentAvailability, error)
	FindByID(ctx context.Context, id string) (*models.ApartmentAvailability, error)
	Create(ctx context.Context, row *models.ApartmentAvailability) error
	Save(ctx context.Context, row *models.ApartmentAvailability) error
	Delete(ctx context.Context, id string) (*models.ApartmentAvailability, error)
}

type apartmentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Apartment, error)
}

// OverrideService quản lý lịch khóa của admin
type OverrideService struct {
	overrides  OverrideStore
	apartments apartmentFinder
	cache      *Cache
	logger     logger.Logger
}

func NewOverrideService(overrides OverrideStore, apartments apartmentFinder, cache *Cache, log logger.Logger) *OverrideService {
	return &OverrideService{overrides: overrides, apartments: apartments, cache: cache, logger: log}
}

func (s *OverrideService) List(ctx context.Context, apartmentID string) ([]models.ApartmentAvailability, error) {
	if _, err := s.apartments.FindByID(ctx, apartmentID); err != nil {
		return nil, err
	}
	return s.overrides.ListByApartment(ctx, apartmentID)
}

// applyOverride kiểm tra request và chép lên row; is_available mặc định false (khóa lịch)
func applyOverride(row *models.ApartmentAvailability, req *dto.AvailabilityRequest) error {
	from, to, err := validator.ValidateOverrideRange(req)
	if err != nil {
		return err
	}
	row.StartDate, row.EndDate = from, to
	row.IsAvailable = req.IsAvailable != nil && *req.IsAvailable
	row.Notes = strings.TrimSpace(req.Notes)
	return nil
}

func (s *OverrideService) Create(ctx context.Context, apartmentID string, req *dto.AvailabilityRequest) (*models.ApartmentAvailability, error) {
	if _, err := s.apartments.FindByID(ctx, apartmentID); err != nil {
		return nil, err
	}
	row := &models.ApartmentAvailability{ApartmentID: apartmentID}
	if err := applyOverride(row, req); err != nil {
		return nil, err
	}
	if err := s.overrides.Create(ctx, row); err != nil {
		return nil, err
	}
	invalidateApartments(ctx, s.cache, s.logger, apartmentID)
	return row, nil
}

func (s *OverrideService) Update(ctx context.Context, id string, req *dto.AvailabilityRequest) (*models.ApartmentAvailability, error) {
	row, err := s.overrides.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyOverride(row, req); err != nil {
		return nil, err
	}
	if err := s.overrides.Save(ctx, row); err != nil {
		return nil, err
	}
	invalidateApartments(ctx, s.cache, s.logger, row.ApartmentID)
	return row, nil
}

func (s *OverrideService) Delete(ctx context.Context, id string) error {
	row, err := s.overrides.Delete(ctx, id)
	if err != nil {
		return err
	}
	invalidateApartments(ctx, s.cache, s.logger, row.ApartmentID)
	return nil
}

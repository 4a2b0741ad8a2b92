package repository

import (
	"context"

	apperrors "rentals/errors"
	"rentals/models"

	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// UnavailableApartmentIDs trả về id căn hộ bị khóa lịch (is_available=false) giao với [from, to]
func (r *AvailabilityRepository) UnavailableApartmentIDs(ctx context.Context, from, to models.Date) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.ApartmentAvailability{}).
		Distinct("apartment_id").
		Where("is_available = ? AND start_date <= ? AND end_date >= ?", false, to, from).
		Pluck("apartment_id", &ids).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return ids, nil
}

func (r *AvailabilityRepository) UnavailableInRange(ctx context.Context, apartmentID string, from, to models.Date) ([]models.ApartmentAvailability, error) {
	var rows []models.ApartmentAvailability
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND is_available = ? AND start_date <= ? AND end_date >= ?", apartmentID, false, to, from).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, translate(err, nil)
}

func (r *AvailabilityRepository) ListByApartment(ctx context.Context, apartmentID string) ([]models.ApartmentAvailability, error) {
	var rows []models.ApartmentAvailability
	err := r.db.WithContext(ctx).
		Where("apartment_id = ?", apartmentID).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, translate(err, nil)
}

func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*models.ApartmentAvailability, error) {
	var row models.ApartmentAvailability
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err, apperrors.ErrOverrideNotFound)
	}
	return &row, nil
}

func (r *AvailabilityRepository) Create(ctx context.Context, row *models.ApartmentAvailability) error {
	return translate(r.db.WithContext(ctx).Create(row).Error, nil)
}

func (r *AvailabilityRepository) Save(ctx context.Context, row *models.ApartmentAvailability) error {
	return translate(r.db.WithContext(ctx).Save(row).Error, nil)
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id string) (*models.ApartmentAvailability, error) {
	var row models.ApartmentAvailability
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return translate(err, apperrors.ErrOverrideNotFound)
		}
		return translate(tx.Delete(&row).Error, nil)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

package repository

import (
	"context"

	apperrors "rentals/errors"
	"rentals/models"

	"gorm.io/gorm"
)

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

// ApartmentFilter dùng cho danh sách admin
type ApartmentFilter struct {
	Active *bool
	Page   Page
}

// ListBookable trả về căn hộ đang hoạt động đủ sức chứa, mới nhất trước
func (r *ApartmentRepository) ListBookable(ctx context.Context, guests int) ([]models.Apartment, error) {
	var apartments []models.Apartment
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND max_guests >= ?", true, guests).
		Order("created_at DESC").
		Find(&apartments).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return apartments, nil
}

func (r *ApartmentRepository) List(ctx context.Context, filter ApartmentFilter) ([]models.Apartment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Apartment{})
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}

	var apartments []models.Apartment
	if err := filter.Page.apply(query.Order("created_at DESC")).Find(&apartments).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	return apartments, total, nil
}

func (r *ApartmentRepository) FindByID(ctx context.Context, id string) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := r.db.WithContext(ctx).First(&apartment, "id = ?", id).Error; err != nil {
		return nil, translate(err, apperrors.ErrApartmentNotFound)
	}
	return &apartment, nil
}

// ListLocated trả về căn hộ đang hoạt động đã có tọa độ
func (r *ApartmentRepository) ListLocated(ctx context.Context) ([]models.Apartment, error) {
	var apartments []models.Apartment
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Order("created_at DESC").
		Find(&apartments).Error
	return apartments, translate(err, nil)
}

func (r *ApartmentRepository) Create(ctx context.Context, apartment *models.Apartment) error {
	return translate(r.db.WithContext(ctx).Create(apartment).Error, nil)
}

// Save ghi đè toàn bộ bản ghi (kể cả giá trị zero như is_active=false)
func (r *ApartmentRepository) Save(ctx context.Context, apartment *models.Apartment) error {
	return translate(r.db.WithContext(ctx).Save(apartment).Error, nil)
}

func (r *ApartmentRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Apartment{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrApartmentNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrApartmentNotFound
	}
	return nil
}

// Delete xóa căn hộ cùng booking và khoảng khóa lịch của nó
func (r *ApartmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("apartment_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return translate(err, apperrors.ErrApartmentNotFound)
		}
		if err := tx.Where("apartment_id = ?", id).Delete(&models.ApartmentAvailability{}).Error; err != nil && !isMissingTable(err) {
			return translate(err, nil)
		}
		res := tx.Delete(&models.Apartment{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, nil)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrApartmentNotFound
		}
		return nil
	})
}

func (r *ApartmentRepository) CountByActive(ctx context.Context) (active, inactive int64, err error) {
	type row struct {
		IsActive bool
		Total    int64
	}
	var rows []row
	err = r.db.WithContext(ctx).Model(&models.Apartment{}).
		Select("is_active, COUNT(*) AS total").
		Group("is_active").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, translate(err, nil)
	}
	for _, rw := range rows {
		if rw.IsActive {
			active = rw.Total
		} else {
			inactive = rw.Total
		}
	}
	return active, inactive, nil
}

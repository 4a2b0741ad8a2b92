package repository

import (
	"context"

	apperrors "rentals/errors"
	"rentals/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingFilter struct {
	Status      models.BookingStatus
	ApartmentID string
	Page        Page
}

// ConfirmedApartmentIDs trả về id căn hộ có booking confirmed giao với [from, to].
// Booking pending không được tính.
func (r *BookingRepository) ConfirmedApartmentIDs(ctx context.Context, from, to models.Date) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Distinct("apartment_id").
		Where("status = ? AND check_in <= ? AND check_out >= ?", models.BookingConfirmed, to, from).
		Pluck("apartment_id", &ids).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return ids, nil
}

// ConfirmedInRange trả về booking confirmed của một căn hộ giao với [from, to]
func (r *BookingRepository) ConfirmedInRange(ctx context.Context, apartmentID string, from, to models.Date) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND status = ? AND check_in <= ? AND check_out >= ?", apartmentID, models.BookingConfirmed, to, from).
		Order("check_in ASC").
		Find(&bookings).Error
	return bookings, translate(err, nil)
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Create(booking).Error, nil)
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Apartment").First(&booking, "id = ?", id).Error; err != nil {
		return nil, translate(err, apperrors.ErrBookingNotFound)
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ApartmentID != "" {
		query = query.Where("apartment_id = ?", filter.ApartmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		if isMalformedID(err) {
			// apartment_id không phải uuid thì không có booking nào khớp
			return []models.Booking{}, 0, nil
		}
		return nil, 0, translate(err, nil)
	}

	var bookings []models.Booking
	err := filter.Page.apply(query.Preload("Apartment").Order("created_at DESC")).Find(&bookings).Error
	if err != nil {
		return nil, 0, translate(err, nil)
	}
	return bookings, total, nil
}

// UpdateStatus đổi trạng thái và trả về bản ghi trước và sau khi cập nhật
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (before models.BookingStatus, updated *models.Booking, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", id).Error; err != nil {
			return translate(err, apperrors.ErrBookingNotFound)
		}
		before = booking.Status
		if err := tx.Model(&booking).Update("status", status).Error; err != nil {
			return translate(err, nil)
		}
		if err := tx.Preload("Apartment").First(&booking, "id = ?", id).Error; err != nil {
			return translate(err, apperrors.ErrBookingNotFound)
		}
		updated = &booking
		return nil
	})
	return before, updated, err
}

func (r *BookingRepository) Delete(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", id).Error; err != nil {
			return translate(err, apperrors.ErrBookingNotFound)
		}
		return translate(tx.Delete(&booking).Error, nil)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	type row struct {
		Status models.BookingStatus
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	counts := map[models.BookingStatus]int64{
		models.BookingPending:   0,
		models.BookingConfirmed: 0,
		models.BookingCancelled: 0,
	}
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}

// UpcomingCheckIns trả về booking confirmed có check_in trong [from, to]
func (r *BookingRepository) UpcomingCheckIns(ctx context.Context, from, to models.Date) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Preload("Apartment").
		Where("status = ? AND check_in >= ? AND check_in <= ?", models.BookingConfirmed, from, to).
		Order("check_in ASC").
		Find(&bookings).Error
	return bookings, translate(err, nil)
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Preload("Apartment").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, translate(err, nil)
}

// Package testutil chứa helper dùng chung cho test: sqlite in-memory và fixture.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"rentals/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB mở một sqlite in-memory riêng cho mỗi test và migrate các model truyền vào.
func NewDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if len(tables) > 0 {
		require.NoError(t, db.AutoMigrate(tables...))
	}
	return db
}

// AllModels trả về toàn bộ model của ứng dụng
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Apartment{},
		&models.Booking{},
		&models.ApartmentAvailability{},
	}
}

type ApartmentOption func(*models.Apartment)

func WithGuests(n int) ApartmentOption {
	return func(a *models.Apartment) { a.MaxGuests = n }
}

func Inactive() ApartmentOption {
	return func(a *models.Apartment) { a.IsActive = false }
}

func WithAmenities(values map[models.Amenity]bool) ApartmentOption {
	return func(a *models.Apartment) {
		c := a.Characteristics.Data()
		for k, v := range values {
			c.Set(k, v)
		}
		a.Characteristics = datatypes.NewJSONType(c)
	}
}

func CreatedAt(at time.Time) ApartmentOption {
	return func(a *models.Apartment) { a.CreatedAt = at }
}

func Titled(title string) ApartmentOption {
	return func(a *models.Apartment) { a.Title = title }
}

// NewApartment dựng một căn hộ hợp lệ, đang hoạt động, 4 khách
func NewApartment(opts ...ApartmentOption) *models.Apartment {
	a := &models.Apartment{
		ID:              uuid.NewString(),
		Title:           "Departamento Centro",
		Address:         "Av. San Martín 1200, Mendoza",
		PricePerNight:   50,
		MaxGuests:       4,
		IsActive:        true,
		Characteristics: datatypes.NewJSONType(models.Characteristics{}),
		Images:          datatypes.JSONSlice[string]{},
		ContactEmail:    "host@example.com",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SeedApartment tạo căn hộ trong db
func SeedApartment(t *testing.T, db *gorm.DB, opts ...ApartmentOption) *models.Apartment {
	t.Helper()
	a := NewApartment(opts...)
	require.NoError(t, db.Create(a).Error)
	return a
}

func SeedBooking(t *testing.T, db *gorm.DB, apartmentID string, status models.BookingStatus, from, to models.Date) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ApartmentID: apartmentID,
		GuestName:   "Ana",
		GuestEmail:  "ana@example.com",
		GuestPhone:  "+5492610000000",
		CheckIn:     from,
		CheckOut:    to,
		TotalGuests: 2,
		TotalPrice:  100,
		Status:      status,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func SeedOverride(t *testing.T, db *gorm.DB, apartmentID string, available bool, from, to models.Date) *models.ApartmentAvailability {
	t.Helper()
	o := &models.ApartmentAvailability{
		ApartmentID: apartmentID,
		StartDate:   from,
		EndDate:     to,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

// D là viết tắt để dựng ngày trong test
func D(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

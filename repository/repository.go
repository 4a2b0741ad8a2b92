// Package repository là lớp truy vấn mỏng trên các bảng apartments, bookings,
// apartment_availability và users.
package repository

import (
	"errors"
	"fmt"
	"strings"

	apperrors "rentals/errors"
	"rentals/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Mã lỗi postgres
const (
	pgUndefinedTable     = "42P01"
	pgInvalidTextForUUID  = "22P02"
)

// Models liệt kê các bảng do ứng dụng quản lý, theo thứ tự migrate
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Apartment{},
		&models.Booking{},
		&models.ApartmentAvailability{},
	}
}

// Migrate tạo/cập nhật schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func isMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}

// isMalformedID: id không phải uuid hợp lệ (invalid_text_representation)
func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextForUUID
}

// translate maps driver errors onto the package's sentinel errors.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case notFound != nil && isMalformedID(err):
		return notFound
	case isMissingTable(err):
		return fmt.Errorf("%w: %v", apperrors.ErrTableMissing, err)
	}
	return err
}

// Page chuẩn hóa page/limit
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Limit <= 0 {
		return db
	}
	return db.Offset(p.Offset()).Limit(p.Limit)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApartmentAvailability là khoảng ngày admin đặt thủ công cho một căn hộ
// (ví dụ chủ nhà khóa lịch), độc lập với booking.
type ApartmentAvailability struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	ApartmentID string    `json:"apartment_id" gorm:"type:uuid;not null;index"`
	StartDate   Date      `json:"start_date" gorm:"not null;index"`
	EndDate     Date      `json:"end_date" gorm:"not null;index"`
	IsAvailable bool      `json:"is_available"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ApartmentAvailability) TableName() string {
	return "apartment_availability"
}

func (a *ApartmentAvailability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Overlaps dùng cùng bất đẳng thức với truy vấn tìm kiếm:
// start <= to AND end >= from.
func (a *ApartmentAvailability) Overlaps(from, to Date) bool {
	return !a.StartDate.After(to) && !a.EndDate.Before(from)
}

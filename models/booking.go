package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID          string        `json:"id" gorm:"type:uuid;primaryKey"`
	ApartmentID string        `json:"apartment_id" gorm:"type:uuid;not null;index"`
	Apartment   *Apartment    `json:"apartment,omitempty" gorm:"foreignKey:ApartmentID;constraint:OnDelete:CASCADE"`
	GuestName   string        `json:"guest_name" gorm:"not null"`
	GuestEmail  string        `json:"guest_email" gorm:"not null"`
	GuestPhone  string        `json:"guest_phone" gorm:"not null"`
	CheckIn     Date          `json:"check_in" gorm:"not null;index"`
	CheckOut    Date          `json:"check_out" gorm:"not null;index"`
	TotalGuests int           `json:"total_guests" gorm:"not null"`
	TotalPrice  float64       `json:"total_price" gorm:"not null"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	Notes       string        `json:"notes"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}

// Nights số đêm lưu trú
func (b *Booking) Nights() int {
	return b.CheckIn.Nights(b.CheckOut)
}

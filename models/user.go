package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User là tài khoản quản trị; khách đặt phòng không cần tài khoản.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name         string    `gorm:"default:Admin" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	Role         int       `gorm:"default:0" json:"role"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

package dto

import (
	"time"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UserLoginResponse struct {
	UserID    string    `json:"id"`
	UserName  string    `json:"name"`
	UserEmail string    `json:"email"`
	UserRole  int       `json:"role"`
	Avatar    string    `json:"avatar"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type GoogleUser struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verifiedEmail"`
	Picture       string `json:"picture"`
}

type AvailabilityRequest struct {
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	IsAvailable *bool  `json:"is_available"`
	Notes       string `json:"notes" validate:"max=1000"`
}

type LocaleRequest struct {
	Locale string `json:"locale" validate:"required"`
}

type LocaleResponse struct {
	Locale    string   `json:"locale"`
	Supported []string `json:"supported"`
}

package dto

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"rentals/models"
	"rentals/response"
)

// SearchFilters là bộ lọc tìm kiếm đã được kiểm tra; không lưu xuống DB
type SearchFilters struct {
	CheckIn   *models.Date     `json:"check_in,omitempty"`
	CheckOut  *models.Date     `json:"check_out,omitempty"`
	Guests    int              `json:"guests"`
	Amenities []models.Amenity `json:"amenities,omitempty"`
	Query     string           `json:"q,omitempty"`
	Page      int              `json:"page"`
	Limit     int              `json:"limit"`
}

// HasDates chỉ đúng khi có đủ cả check_in và check_out
func (f *SearchFilters) HasDates() bool {
	return f.CheckIn != nil && f.CheckOut != nil && !f.CheckIn.IsZero() && !f.CheckOut.IsZero()
}

// CacheKey is stable for filters that select the same result set.
func (f *SearchFilters) CacheKey() string {
	amenities := make([]string, 0, len(f.Amenities))
	for _, a := range f.Amenities {
		amenities = append(amenities, string(a))
	}
	sort.Strings(amenities)

	var in, out string
	if f.HasDates() {
		in, out = f.CheckIn.String(), f.CheckOut.String()
	}
	return fmt.Sprintf("g=%d|in=%s|out=%s|a=%s|q=%s|p=%d|l=%d",
		f.Guests, in, out, strings.Join(amenities, ","), strings.ToLower(strings.TrimSpace(f.Query)), f.Page, f.Limit)
}

// SearchQuery là tham số thô từ query string
type SearchQuery struct {
	CheckIn   string   `form:"check_in"`
	CheckOut  string   `form:"check_out"`
	Guests    string   `form:"guests"`
	Amenities []string `form:"amenities"`
	Q         string   `form:"q"`
	PageQuery
}

// ApartmentView là căn hộ trả cho client kèm ảnh đại diện và link bản đồ
type ApartmentView struct {
	*models.Apartment
	PrincipalImage string `json:"principal_image,omitempty"`
	MapURL         string `json:"map_url,omitempty"`
}

type SearchResponse struct {
	Data       []ApartmentView     `json:"data"`
	Pagination response.Pagination `json:"pagination"`
	// Degraded báo rằng một nguồn loại trừ bị lỗi; kết quả có thể chứa căn hộ đã kín lịch
	Degraded   bool   `json:"degraded"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ApartmentRequest là body tạo/cập nhật căn hộ của admin
type ApartmentRequest struct {
	Title               string          `json:"title" validate:"required,max=200"`
	Description         string          `json:"description" validate:"max=5000"`
	Address             string          `json:"address" validate:"max=300"`
	PricePerNight       float64         `json:"price_per_night" validate:"gt=0"`
	MaxGuests           int             `json:"max_guests" validate:"min=1,max=50"`
	IsActive            *bool           `json:"is_active"`
	Characteristics     json.RawMessage `json:"characteristics" swaggertype:"object"`
	Images              []string        `json:"images" validate:"omitempty,dive,url"`
	PrincipalImageIndex *int            `json:"principal_image_index" validate:"omitempty,min=0"`
	GoogleMapsURL       string          `json:"google_maps_url" validate:"omitempty,max=2048"`
	ContactEmail        string          `json:"contact_email" validate:"required,email"`
	ContactPhone        string          `json:"contact_phone" validate:"max=40"`
	ContactWhatsapp     string          `json:"contact_whatsapp" validate:"max=40"`
}

type ApartmentListQuery struct {
	Active *bool `form:"active"`
	PageQuery
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type PrincipalImageRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

type ReorderImagesRequest struct {
	Order []int `json:"order" validate:"required,min=1"`
}

// MapMarker gom các căn hộ nằm chung một ô geohash
type MapMarker struct {
	Geohash      string   `json:"geohash"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Count        int      `json:"count"`
	ApartmentIDs []string `json:"apartment_ids"`
}

type MapQuery struct {
	Precision uint `form:"precision"`
}

// BlockedRange là khoảng ngày không đặt được, từ booking confirmed hoặc khóa lịch
type BlockedRange struct {
	Start  models.Date `json:"start"`
	End    models.Date `json:"end"`
	Source string      `json:"source"`
}

type CalendarQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type CalendarResponse struct {
	ApartmentID string         `json:"apartment_id"`
	From        models.Date    `json:"from"`
	To          models.Date    `json:"to"`
	Blocked     []BlockedRange `json:"blocked"`
	Degraded    bool           `json:"degraded"`
}

package builders

import (
	"strings"

	"rentals/dto"
	"rentals/models"

	"gorm.io/datatypes"
)

// ApartmentBuilder dựng căn hộ từ request của admin, dùng cho cả tạo mới lẫn cập nhật
type ApartmentBuilder struct {
	apartment *models.Apartment
}

// NewApartmentBuilder nhận căn hộ đang có (cập nhật) hoặc nil (tạo mới)
func NewApartmentBuilder(existing *models.Apartment) *ApartmentBuilder {
	if existing == nil {
		existing = &models.Apartment{IsActive: true}
	}
	return &ApartmentBuilder{apartment: existing}
}

// FromRequest chép các field cơ bản. is_active và principal_image_index chỉ đổi
// khi request có gửi; thay danh sách ảnh mà không kèm index thì ảnh đại diện về 0.
func (b *ApartmentBuilder) FromRequest(req *dto.ApartmentRequest) *ApartmentBuilder {
	a := b.apartment
	a.Title = strings.TrimSpace(req.Title)
	a.Description = strings.TrimSpace(req.Description)
	a.Address = strings.TrimSpace(req.Address)
	a.PricePerNight = req.PricePerNight
	a.MaxGuests = req.MaxGuests
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	a.GoogleMapsURL = strings.TrimSpace(req.GoogleMapsURL)
	a.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	a.ContactPhone = strings.TrimSpace(req.ContactPhone)
	a.ContactWhatsapp = strings.TrimSpace(req.ContactWhatsapp)
	if req.Images != nil {
		a.Images = datatypes.JSONSlice[string](req.Images)
		a.PrincipalImageIndex = 0
	}
	if req.PrincipalImageIndex != nil {
		a.PrincipalImageIndex = *req.PrincipalImageIndex
	}
	return b
}

func (b *ApartmentBuilder) WithCharacteristics(c models.Characteristics) *ApartmentBuilder {
	b.apartment.Characteristics = datatypes.NewJSONType(c)
	return b
}

// Build kiểm tra ảnh đại diện rồi trả về căn hộ
func (b *ApartmentBuilder) Build() (*models.Apartment, error) {
	if b.apartment.Images == nil {
		b.apartment.Images = datatypes.JSONSlice[string]{}
	}
	if len(b.apartment.Images) == 0 {
		b.apartment.PrincipalImageIndex = 0
	}
	if err := b.apartment.ValidatePrincipalImage(); err != nil {
		return nil, err
	}
	return b.apartment, nil
}

package services

import "rentals/models"

// FilterByAmenities giữ căn hộ có đủ mọi tiện ích được yêu cầu (AND, không khớp một phần).
// Khóa không có trong characteristics được coi là false.
func FilterByAmenities(apartments []models.Apartment, amenities []models.Amenity) []models.Apartment {
	if len(amenities) == 0 {
		return apartments
	}

	filtered := make([]models.Apartment, 0, len(apartments))
	for _, a := range apartments {
		characteristics := a.Characteristics.Data()
		ok := true
		for _, amenity := range amenities {
			if !characteristics.Has(amenity) {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

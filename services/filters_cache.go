package services

import (
	"context"

	"rentals/constants"
	"rentals/dto"
	"rentals/models"
)

// Bộ lọc gần nhất của mỗi phiên, giữ 30 phút để trang tìm kiếm khôi phục lại
func SaveLastFilters(ctx context.Context, cache *Cache, sessionID string, filters *dto.SearchFilters) error {
	if sessionID == "" {
		return nil
	}
	return cache.Set(ctx, constants.CacheLastFilters+sessionID, filters, constants.LastFiltersTTL)
}

// GetLastFilters trả về nil khi phiên chưa tìm kiếm lần nào
func GetLastFilters(ctx context.Context, cache *Cache, sessionID string) (*dto.SearchFilters, error) {
	if sessionID == "" {
		return nil, nil
	}
	var filters dto.SearchFilters
	found, err := cache.Get(ctx, constants.CacheLastFilters+sessionID, &filters)
	if err != nil || !found {
		return nil, err
	}
	return &filters, nil
}

func ClearLastFilters(ctx context.Context, cache *Cache, sessionID string) error {
	return cache.Delete(ctx, constants.CacheLastFilters+sessionID)
}

// MergeFilters gộp yêu cầu cũ với yêu cầu mới; giá trị mới được ưu tiên.
// explicitGuests cho biết request mới có gửi guests hay dùng mặc định.
func MergeFilters(old, new *dto.SearchFilters, explicitGuests bool) *dto.SearchFilters {
	if old == nil {
		return new
	}
	merged := *new

	if !new.HasDates() && old.HasDates() {
		merged.CheckIn, merged.CheckOut = old.CheckIn, old.CheckOut
	}
	if !explicitGuests && old.Guests > 0 {
		merged.Guests = old.Guests
	}
	merged.Query = orString(new.Query, old.Query)

	// Gộp tiện ích, giữ thứ tự xuất hiện
	seen := make(map[models.Amenity]bool)
	merged.Amenities = nil
	for _, list := range [][]models.Amenity{old.Amenities, new.Amenities} {
		for _, a := range list {
			if !seen[a] {
				seen[a] = true
				merged.Amenities = append(merged.Amenities, a)
			}
		}
	}
	return &merged
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

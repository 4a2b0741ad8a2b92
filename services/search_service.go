package services

import (
	"context"

	"rentals/constants"
	"rentals/dto"
	"rentals/models"
	"rentals/response"
	"rentals/services/logger"
)

// Resolver là phần tính tập căn hộ đặt được, để test có thể thay thế
type Resolver interface {
	Resolve(ctx context.Context, filters dto.SearchFilters) (SearchResult, error)
}

// SearchService bọc resolver với cache redis, phân trang và bộ lọc theo phiên
type SearchService struct {
	resolver Resolver
	cache    *Cache
	logger   logger.Logger
}

func NewSearchService(resolver Resolver, cache *Cache, log logger.Logger) *SearchService {
	return &SearchService{resolver: resolver, cache: cache, logger: log}
}

// NewApartmentView thêm ảnh đại diện và link bản đồ vào căn hộ
func NewApartmentView(a *models.Apartment) dto.ApartmentView {
	return dto.ApartmentView{
		Apartment:      a,
		PrincipalImage: a.PrincipalImage(),
		MapURL:         MapURL(a),
	}
}

// Search trả về một trang kết quả. Kết quả degraded không được cache.
func (s *SearchService) Search(ctx context.Context, sessionID string, filters *dto.SearchFilters) (*dto.SearchResponse, error) {
	page := dto.PageQuery{Page: filters.Page, Limit: filters.Limit}.Normalize()
	filters.Page, filters.Limit = page.Page, page.Limit
	if filters.Guests < 1 {
		filters.Guests = 1
	}

	if err := SaveLastFilters(ctx, s.cache, sessionID, filters); err != nil {
		s.logger.Warn("Không thể lưu bộ lọc của phiên %s: %v", sessionID, err)
	}

	cacheKey := constants.CacheSearchPrefix + filters.CacheKey()
	var cached dto.SearchResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.logger.Warn("Lỗi khi đọc cache tìm kiếm: %v", err)
	}
	if found {
		return &cached, nil
	}

	result, err := s.resolver.Resolve(ctx, *filters)
	if err != nil {
		return nil, err
	}

	total := len(result.Apartments)
	start := (page.Page - 1) * page.Limit
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	views := make([]dto.ApartmentView, 0, end-start)
	for i := start; i < end; i++ {
		views = append(views, NewApartmentView(&result.Apartments[i]))
	}

	resp := &dto.SearchResponse{
		Data: views,
		Pagination: response.Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: int64(total),
		},
		Degraded:   result.Degraded,
		Suggestion: result.Suggestion,
	}

	if !result.Degraded {
		if err := s.cache.Set(ctx, cacheKey, resp, constants.SearchCacheTTL); err != nil {
			s.logger.Warn("Lỗi khi lưu cache tìm kiếm: %v", err)
		}
	}
	return resp, nil
}

// Refine gộp bộ lọc mới với lần tìm kiếm trước của phiên rồi tìm lại
func (s *SearchService) Refine(ctx context.Context, sessionID string, filters *dto.SearchFilters, explicitGuests bool) (*dto.SearchResponse, error) {
	last, err := GetLastFilters(ctx, s.cache, sessionID)
	if err != nil {
		s.logger.Warn("Không thể đọc bộ lọc của phiên %s: %v", sessionID, err)
	}
	return s.Search(ctx, sessionID, MergeFilters(last, filters, explicitGuests))
}

// LastFilters trả về nil khi phiên chưa tìm kiếm hoặc cache tắt
func (s *SearchService) LastFilters(ctx context.Context, sessionID string) (*dto.SearchFilters, error) {
	return GetLastFilters(ctx, s.cache, sessionID)
}

// ClearSession quên bộ lọc tìm kiếm của phiên, dùng khi đăng xuất
func (s *SearchService) ClearSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return ClearLastFilters(ctx, s.cache, sessionID)
}

// Invalidate xóa toàn bộ kết quả tìm kiếm đã cache và cache chi tiết của các căn hộ
func (s *SearchService) Invalidate(ctx context.Context, apartmentIDs ...string) {
	invalidateApartments(ctx, s.cache, s.logger, apartmentIDs...)
}

func invalidateApartments(ctx context.Context, cache *Cache, log logger.Logger, apartmentIDs ...string) {
	if !cache.Enabled() {
		return
	}
	if err := cache.DeleteByPrefix(ctx, constants.CacheSearchPrefix); err != nil {
		log.Warn("Không thể xóa cache tìm kiếm: %v", err)
	}
	keys := make([]string, 0, len(apartmentIDs)+1)
	for _, id := range apartmentIDs {
		keys = append(keys, constants.CacheApartmentPrefix+id)
	}
	keys = append(keys, constants.CacheDashboard)
	if err := cache.Delete(ctx, keys...); err != nil {
		log.Warn("Không thể xóa cache căn hộ: %v", err)
	}
}

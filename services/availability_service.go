package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/services/logger"
)

// ApartmentSource trả về căn hộ đang hoạt động có max_guests >= guests, mới nhất trước
type ApartmentSource interface {
	ListBookable(ctx context.Context, guests int) ([]models.Apartment, error)
}

// BookingExclusions trả về id căn hộ có booking confirmed giao với khoảng ngày
type BookingExclusions interface {
	ConfirmedApartmentIDs(ctx context.Context, from, to models.Date) ([]string, error)
}

// OverrideExclusions trả về id căn hộ bị admin khóa lịch trong khoảng ngày
type OverrideExclusions interface {
	UnavailableApartmentIDs(ctx context.Context, from, to models.Date) ([]string, error)
}

// SearchResult phân biệt "không có kết quả" với "một nguồn loại trừ bị lỗi"
type SearchResult struct {
	Apartments []models.Apartment
	// Degraded: một nguồn loại trừ lỗi nên kết quả có thể còn căn hộ đã kín lịch
	Degraded   bool
	Suggestion string
}

type AvailabilityResolverOptions struct {
	Apartments ApartmentSource
	Bookings   BookingExclusions
	Overrides  OverrideExclusions
	Logger     logger.Logger
}

// AvailabilityResolver tính tập căn hộ đặt được cho một bộ lọc
type AvailabilityResolver struct {
	apartments ApartmentSource
	bookings   BookingExclusions
	overrides  OverrideExclusions
	logger     logger.Logger
}

func NewAvailabilityResolver(opts AvailabilityResolverOptions) *AvailabilityResolver {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AvailabilityResolver{
		apartments: opts.Apartments,
		bookings:   opts.Bookings,
		overrides:  opts.Overrides,
		logger:     log,
	}
}

// Resolve chạy các bước:
//  1. căn hộ active, max_guests >= guests
//  2. nếu có đủ check_in/check_out: loại căn hộ bị khóa lịch hoặc có booking
//     confirmed giao với khoảng ngày (start <= check_out AND end >= check_in)
//  3. lọc tiện ích (AND), rồi từ khóa tự do
//  4. sắp xếp created_at giảm dần
//
// Lỗi của một nguồn loại trừ chỉ được log và đánh dấu Degraded; lỗi của bước 1
// được trả về cho caller.
func (r *AvailabilityResolver) Resolve(ctx context.Context, filters dto.SearchFilters) (result SearchResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Availability resolver panic: %v", rec)
			result = SearchResult{}
			err = fmt.Errorf("availability resolver: %v", rec)
		}
	}()

	guests := filters.Guests
	if guests < 1 {
		guests = 1
	}

	apartments, err := r.apartments.ListBookable(ctx, guests)
	if err != nil {
		r.logger.Error("Không thể lấy danh sách căn hộ: %v", err)
		return SearchResult{}, fmt.Errorf("list apartments: %w", err)
	}

	if filters.HasDates() {
		from, to := *filters.CheckIn, *filters.CheckOut
		overrideIDs, overridesDegraded := r.collect(ctx, "apartment_availability", func(ctx context.Context) ([]string, error) {
			return r.overrides.UnavailableApartmentIDs(ctx, from, to)
		})
		bookingIDs, bookingsDegraded := r.collect(ctx, "bookings", func(ctx context.Context) ([]string, error) {
			return r.bookings.ConfirmedApartmentIDs(ctx, from, to)
		})
		result.Degraded = overridesDegraded || bookingsDegraded

		excluded := make(map[string]bool, len(overrideIDs)+len(bookingIDs))
		for _, id := range overrideIDs {
			excluded[id] = true
		}
		for _, id := range bookingIDs {
			excluded[id] = true
		}

		if len(excluded) > 0 {
			kept := make([]models.Apartment, 0, len(apartments))
			for _, a := range apartments {
				if !excluded[a.ID] {
					kept = append(kept, a)
				}
			}
			r.logger.Debug("Excluded %d apartments for %s..%s", len(apartments)-len(kept), from, to)
			apartments = kept
		}
	}

	apartments = FilterByAmenities(apartments, filters.Amenities)
	apartments, result.Suggestion = FilterByText(apartments, filters.Query)

	sort.SliceStable(apartments, func(i, j int) bool {
		return apartments[i].CreatedAt.After(apartments[j].CreatedAt)
	})

	result.Apartments = apartments
	return result, nil
}

// collect chạy một truy vấn loại trừ. Bảng chưa tạo nghĩa là không có dữ liệu
// loại trừ (không degraded); lỗi khác thì bỏ qua nguồn đó và báo degraded.
func (r *AvailabilityResolver) collect(ctx context.Context, source string, query func(context.Context) ([]string, error)) ([]string, bool) {
	ids, err := query(ctx)
	if err == nil {
		return ids, false
	}
	if errors.Is(err, apperrors.ErrTableMissing) {
		r.logger.Warn("Bảng %s chưa tồn tại, bỏ qua nguồn loại trừ này", source)
		return nil, false
	}
	r.logger.Error("Lỗi khi truy vấn %s, bỏ qua nguồn loại trừ này: %v", source, err)
	return nil, true
}

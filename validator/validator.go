package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// lỗi trả về dùng tên field trong JSON/form
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Struct kiểm tra struct theo tag `validate`. Lỗi "required" đầu tiên (theo thứ tự
// khai báo field) được ưu tiên; sau đó mới tới lỗi định dạng.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Invalid request", err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Missing required field: "+fe.Field(), apperrors.ErrMissingRequired)
		}
	}
	return apperrors.NewAppError(apperrors.ErrCodeValidation, "Invalid field: "+verrs[0].Field(), apperrors.ErrInvalidInput)
}

// ValidateBookingRequest kiểm tra trường bắt buộc rồi tới khoảng ngày
func ValidateBookingRequest(req *dto.CreateBookingRequest) (checkIn, checkOut models.Date, err error) {
	if err = Struct(req); err != nil {
		return
	}
	return ValidateDateRange(req.CheckIn, req.CheckOut, "check_in", "check_out")
}

// ValidateDateRange yêu cầu to > from
func ValidateDateRange(fromRaw, toRaw, fromName, toName string) (from, to models.Date, err error) {
	if from, err = parseDateField(fromRaw, fromName); err != nil {
		return
	}
	if to, err = parseDateField(toRaw, toName); err != nil {
		return
	}
	if !to.After(from) {
		err = apperrors.NewAppError(apperrors.ErrCodeValidation, toName+" must be after "+fromName, apperrors.ErrInvalidInput)
	}
	return
}

// ValidateOverrideRange cho phép khoảng một ngày (start == end)
func ValidateOverrideRange(req *dto.AvailabilityRequest) (from, to models.Date, err error) {
	if err = Struct(req); err != nil {
		return
	}
	if from, err = parseDateField(req.StartDate, "start_date"); err != nil {
		return
	}
	if to, err = parseDateField(req.EndDate, "end_date"); err != nil {
		return
	}
	if to.Before(from) {
		err = apperrors.NewAppError(apperrors.ErrCodeValidation, "end_date must not be before start_date", apperrors.ErrInvalidInput)
	}
	return
}

func parseDateField(raw, name string) (models.Date, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid date: "+name, apperrors.ErrInvalidFormat)
	}
	return d, nil
}

// ValidateStatus đọc status của booking
func ValidateStatus(raw string) (models.BookingStatus, error) {
	status, err := models.ParseBookingStatus(strings.TrimSpace(raw))
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidStatus, "Invalid status. Must be one of: pending, confirmed, cancelled", apperrors.ErrInvalidStatus)
	}
	return status, nil
}

// ParseAmenities nhận danh sách lặp lại hoặc phân tách bằng dấu phẩy.
// Tiện ích không có trong danh mục bị từ chối thay vì bỏ qua.
func ParseAmenities(raw []string) ([]models.Amenity, error) {
	seen := make(map[models.Amenity]bool)
	var out []models.Amenity
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			a := models.Amenity(part)
			if !a.IsValid() {
				return nil, apperrors.NewAppError(apperrors.ErrCodeUnknownAmenity, "Unknown amenity: "+part, apperrors.ErrUnknownAmenity)
			}
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out, nil
}

// ParseSearchQuery chuyển query string thành SearchFilters. Ngày chỉ có hiệu lực
// khi có đủ cả hai.
func ParseSearchQuery(q dto.SearchQuery) (*dto.SearchFilters, error) {
	page := q.PageQuery.Normalize()
	filters := &dto.SearchFilters{
		Guests: 1,
		Query:  strings.TrimSpace(q.Q),
		Page:   page.Page,
		Limit:  page.Limit,
	}

	if s := strings.TrimSpace(q.Guests); s != "" {
		guests, err := strconv.Atoi(s)
		if err != nil || guests < 1 {
			return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Invalid field: guests", apperrors.ErrInvalidInput)
		}
		filters.Guests = guests
	}

	if strings.TrimSpace(q.CheckIn) != "" && strings.TrimSpace(q.CheckOut) != "" {
		in, err := parseDateField(q.CheckIn, "check_in")
		if err != nil {
			return nil, err
		}
		out, err := parseDateField(q.CheckOut, "check_out")
		if err != nil {
			return nil, err
		}
		filters.CheckIn, filters.CheckOut = &in, &out
	}

	amenities, err := ParseAmenities(q.Amenities)
	if err != nil {
		return nil, err
	}
	filters.Amenities = amenities
	return filters, nil
}

// ValidatePassword validate mật khẩu admin
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Password must be at least 8 characters", apperrors.ErrInvalidInput)
	}
	return nil
}

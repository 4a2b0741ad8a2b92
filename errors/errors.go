package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định danh loại lỗi trả về từ service
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"

	// Domain errors
	ErrCodeApartmentNotFound ErrorCode = "APARTMENT_NOT_FOUND"
	ErrCodeBookingNotFound   ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeOverrideNotFound  ErrorCode = "OVERRIDE_NOT_FOUND"
	ErrCodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	ErrCodeUnknownAmenity    ErrorCode = "UNKNOWN_AMENITY"
	ErrCodeInvalidLocale     ErrorCode = "INVALID_LOCALE"
	ErrCodeImageIndex        ErrorCode = "INVALID_IMAGE_INDEX"

	// Database errors
	ErrCodeDBError      ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound   ErrorCode = "DB_NOT_FOUND"
	ErrCodeTableMissing ErrorCode = "TABLE_MISSING"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Outbound collaborators
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	ErrCodeMail    ErrorCode = "MAIL_ERROR"
)

// AppError là lỗi nghiệp vụ mang theo code và message an toàn để trả cho client
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ chuỗi lỗi
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")

	ErrApartmentNotFound = errors.New("apartment not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotCreated = errors.New("booking not created")
	ErrOverrideNotFound  = errors.New("availability override not found")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrUnknownAmenity    = errors.New("unknown amenity")
	ErrInvalidLocale     = errors.New("invalid locale")

	// ErrTableMissing is returned by the repository when the backing table has not
	// been created yet.
	ErrTableMissing = errors.New("table does not exist")

	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)

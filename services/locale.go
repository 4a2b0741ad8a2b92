package services

import (
	"strings"

	"rentals/constants"
	apperrors "rentals/errors"

	"golang.org/x/text/language"
)

var supportedLocales = map[string]string{
	language.Spanish.String(): constants.LocaleES,
	language.English.String(): constants.LocaleEN,
}

// SupportedLocales theo thứ tự hiển thị
func SupportedLocales() []string {
	return []string{constants.LocaleES, constants.LocaleEN}
}

// ResolveLocale đọc giá trị cookie NEXT_LOCALE. Rỗng thì dùng tiếng Tây Ban Nha;
// chỉ đúng "en" và "es" hợp lệ (phân biệt hoa thường, không nhận biến thể vùng như en-US).
func ResolveLocale(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.DefaultLocale, nil
	}
	tag, err := language.Parse(raw)
	if err != nil || tag.String() != raw {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidLocale, "Locale not found", apperrors.ErrInvalidLocale)
	}
	locale, ok := supportedLocales[tag.String()]
	if !ok {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidLocale, "Locale not found", apperrors.ErrInvalidLocale)
	}
	return locale, nil
}

package services

import (
	"strings"
	"unicode"

	"rentals/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// similarity tối thiểu để coi một từ là gõ sai của từ kia
const fuzzyThreshold = 0.75

// Hàm chuẩn hóa chuỗi: bỏ dấu, chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(normalizeInput(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

func apartmentWords(a *models.Apartment) []string {
	return tokenize(a.Title + " " + a.Address + " " + a.Description)
}

// matchesQuery: mọi từ trong query phải xuất hiện (hoặc gần đúng) trong tiêu đề,
// địa chỉ hoặc mô tả
func matchesQuery(queryTokens []string, words []string) bool {
	for _, q := range queryTokens {
		found := false
		for _, w := range words {
			if strings.HasPrefix(w, q) || (len(q) > 3 && calculateSimilarity(q, w) >= fuzzyThreshold) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterByText lọc theo từ khóa tự do, giữ nguyên thứ tự đầu vào. Khi không có
// kết quả, suggestion là cụm từ gần nhất trong dữ liệu (rỗng nếu không có).
func FilterByText(apartments []models.Apartment, query string) (filtered []models.Apartment, suggestion string) {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return apartments, ""
	}

	vocabulary := make(map[string]bool)
	filtered = make([]models.Apartment, 0, len(apartments))
	for i := range apartments {
		words := apartmentWords(&apartments[i])
		if matchesQuery(queryTokens, words) {
			filtered = append(filtered, apartments[i])
		}
		for _, w := range words {
			if len(w) > 2 {
				vocabulary[w] = true
			}
		}
	}

	if len(filtered) > 0 || len(vocabulary) == 0 {
		return filtered, ""
	}
	return filtered, suggest(queryTokens, vocabulary)
}

// suggest thay từng từ của query bằng từ gần nhất trong vocabulary
func suggest(queryTokens []string, vocabulary map[string]bool) string {
	words := make([]string, 0, len(vocabulary))
	for w := range vocabulary {
		words = append(words, w)
	}
	cm := closestmatch.New(words, []int{2, 3})

	out := make([]string, 0, len(queryTokens))
	changed := false
	for _, q := range queryTokens {
		best := cm.Closest(q)
		if best != "" && best != q && calculateSimilarity(q, best) >= 0.5 {
			out = append(out, best)
			changed = true
			continue
		}
		out = append(out, q)
	}
	if !changed {
		return ""
	}
	return strings.Join(out, " ")
}

package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"rentals/dto"
	"rentals/models"
	"rentals/services/logger"

	"github.com/mmcloughlin/geohash"
)

// Coordinates là tọa độ đã kiểm tra phạm vi
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const DefaultGeohashPrecision uint = 5

var mapsLogger logger.Logger = logger.NewDefaultLogger(logger.InfoLevel)

// SetMapsLogger gắn logger của ứng dụng cho việc đọc link bản đồ
func SetMapsLogger(l logger.Logger) {
	if l != nil {
		mapsLogger = l
	}
}

// Các mẫu link Google Maps, thử theo thứ tự
var mapsURLPatterns = []*regexp.Regexp{
	// ?q=lat,lng
	regexp.MustCompile(`[?&]q=(-?\d+(?:\.\d+)?),\s*(-?\d+(?:\.\d+)?)`),
	// @lat,lng,zoomz
	regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?),(\d+(?:\.\d+)?)z`),
	// /place/<name>/@lat,lng
	regexp.MustCompile(`/place/[^/]+/@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`),
}

// ExtractCoordinates đọc tọa độ từ link Google Maps; nil nếu không có mẫu nào
// cho ra tọa độ hợp lệ. Không bao giờ panic.
func ExtractCoordinates(mapsURL string) (coords *Coordinates) {
	defer func() {
		if r := recover(); r != nil {
			mapsLogger.Error("Lỗi khi đọc tọa độ từ %q: %v", mapsURL, r)
			coords = nil
		}
	}()

	if mapsURL == "" {
		return nil
	}
	for _, re := range mapsURLPatterns {
		m := re.FindStringSubmatch(mapsURL)
		if m == nil {
			continue
		}
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat != nil || errLng != nil {
			continue
		}
		if ValidCoordinates(lat, lng) {
			return &Coordinates{Latitude: lat, Longitude: lng}
		}
	}
	return nil
}

// ValidCoordinates: số hữu hạn, lat ∈ [-90,90], lng ∈ [-180,180]
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// GoogleMapsStaticURL dựng link mở vị trí trên Google Maps
func GoogleMapsStaticURL(lat, lng float64) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(lng, 'f', -1, 64)
}

// ApplyLocation cập nhật latitude/longitude/geohash của căn hộ theo google_maps_url.
// Link không đọc được sẽ xóa tọa độ cũ.
func ApplyLocation(a *models.Apartment) {
	coords := ExtractCoordinates(a.GoogleMapsURL)
	if coords == nil {
		a.Latitude, a.Longitude, a.Geohash = nil, nil, ""
		return
	}
	lat, lng := coords.Latitude, coords.Longitude
	a.Latitude, a.Longitude = &lat, &lng
	a.Geohash = geohash.Encode(lat, lng)
}

// MapURL trả về link bản đồ của căn hộ nếu có tọa độ
func MapURL(a *models.Apartment) string {
	if a.Latitude == nil || a.Longitude == nil {
		return ""
	}
	return GoogleMapsStaticURL(*a.Latitude, *a.Longitude)
}

// ClusterMarkers gom căn hộ theo ô geohash với độ chính xác cho trước
func ClusterMarkers(apartments []models.Apartment, precision uint) []dto.MapMarker {
	if precision < 1 || precision > 9 {
		precision = DefaultGeohashPrecision
	}

	byCell := make(map[string]*dto.MapMarker)
	for i := range apartments {
		a := &apartments[i]
		if a.Latitude == nil || a.Longitude == nil {
			continue
		}
		cell := geohash.EncodeWithPrecision(*a.Latitude, *a.Longitude, precision)
		marker, ok := byCell[cell]
		if !ok {
			lat, lng := geohash.DecodeCenter(cell)
			marker = &dto.MapMarker{Geohash: cell, Latitude: lat, Longitude: lng}
			byCell[cell] = marker
		}
		marker.Count++
		marker.ApartmentIDs = append(marker.ApartmentIDs, a.ID)
	}

	markers := make([]dto.MapMarker, 0, len(byCell))
	for _, m := range byCell {
		markers = append(markers, *m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].Geohash < markers[j].Geohash })
	return markers
}

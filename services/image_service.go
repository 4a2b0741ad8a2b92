package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/datatypes"
)

// ErrStorageDisabled khi chưa cấu hình Cloudinary
var ErrStorageDisabled = errors.New("image storage is not configured")

// ImageStorage lưu ảnh và trả về URL công khai
type ImageStorage interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
	Destroy(ctx context.Context, url string) error
}

// CloudinaryStorage upload ảnh vào một folder; ảnh HEIC/HEIF được chuyển sang jpg
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, folder: folder}
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	if s == nil || s.cld == nil {
		return "", ErrStorageDisabled
	}
	params := uploader.UploadParams{Folder: s.folder}
	switch strings.ToLower(path.Ext(filename)) {
	case ".heic", ".heif":
		params.Format = "jpg"
	}

	resp, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStorage) Destroy(ctx context.Context, url string) error {
	if s == nil || s.cld == nil {
		return ErrStorageDisabled
	}
	publicID := PublicIDFromURL(url)
	if publicID == "" {
		return fmt.Errorf("not a cloudinary url: %s", url)
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

// PublicIDFromURL lấy public id từ URL .../upload/v123/<folder>/<id>.<ext>
func PublicIDFromURL(url string) string {
	_, rest, found := strings.Cut(url, "/upload/")
	if !found || rest == "" {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) > 1 && len(parts[0]) > 1 && parts[0][0] == 'v' && isDigits(parts[0][1:]) {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

type imageApartments interface {
	FindByID(ctx context.Context, id string) (*models.Apartment, error)
	Save(ctx context.Context, apartment *models.Apartment) error
}

// ImageService quản lý danh sách ảnh và ảnh đại diện của căn hộ
type ImageService struct {
	apartments imageApartments
	storage    ImageStorage
	cache      *Cache
	logger     logger.Logger
}

func NewImageService(apartments imageApartments, storage ImageStorage, cache *Cache, log logger.Logger) *ImageService {
	return &ImageService{apartments: apartments, storage: storage, cache: cache, logger: log}
}

func invalidIndex(index int) error {
	return apperrors.NewAppError(apperrors.ErrCodeImageIndex, fmt.Sprintf("Invalid image index: %d", index), apperrors.ErrInvalidInput)
}

func (s *ImageService) save(ctx context.Context, apartment *models.Apartment) (*models.Apartment, error) {
	if err := s.apartments.Save(ctx, apartment); err != nil {
		return nil, err
	}
	invalidateApartments(ctx, s.cache, s.logger, apartment.ID)
	return apartment, nil
}

// Upload đẩy từng file lên storage rồi nối URL vào cuối danh sách ảnh
func (s *ImageService) Upload(ctx context.Context, apartmentID string, files []*multipart.FileHeader) (*models.Apartment, error) {
	apartment, err := s.apartments.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.uploadOne(ctx, fh)
		if err != nil {
			s.discard(ctx, urls)
			return nil, apperrors.NewAppError(apperrors.ErrCodeStorage, "Upload failed", err)
		}
		urls = append(urls, url)
	}

	apartment.Images = append(apartment.Images, urls...)
	saved, err := s.save(ctx, apartment)
	if err != nil {
		s.discard(ctx, urls)
		return nil, err
	}
	s.logger.Info("Đã upload %d ảnh cho căn hộ %s", len(urls), apartmentID)
	return saved, nil
}

// discard gỡ các ảnh vừa upload khi cả lô không được lưu
func (s *ImageService) discard(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.storage.Destroy(ctx, url); err != nil {
			s.logger.Warn("Không thể xóa ảnh %s khỏi storage: %v", url, err)
		}
	}
}

func (s *ImageService) uploadOne(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.storage.Upload(ctx, src, fh.Filename)
}

// DeleteImage xóa ảnh tại index và giữ ảnh đại diện trỏ đúng ảnh cũ nếu còn
func (s *ImageService) DeleteImage(ctx context.Context, apartmentID string, index int) (*models.Apartment, error) {
	apartment, err := s.apartments.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(apartment.Images) {
		return nil, invalidIndex(index)
	}

	url := apartment.Images[index]
	if err := s.storage.Destroy(ctx, url); err != nil {
		s.logger.Warn("Không thể xóa ảnh %s khỏi storage: %v", url, err)
	}

	images := make(datatypes.JSONSlice[string], 0, len(apartment.Images)-1)
	images = append(images, apartment.Images[:index]...)
	images = append(images, apartment.Images[index+1:]...)
	apartment.Images = images

	switch {
	case len(images) == 0, index == apartment.PrincipalImageIndex:
		apartment.PrincipalImageIndex = 0
	case index < apartment.PrincipalImageIndex:
		apartment.PrincipalImageIndex--
	}
	return s.save(ctx, apartment)
}

func (s *ImageService) SetPrincipal(ctx context.Context, apartmentID string, index int) (*models.Apartment, error) {
	apartment, err := s.apartments.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(apartment.Images) {
		return nil, invalidIndex(index)
	}
	apartment.PrincipalImageIndex = index
	return s.save(ctx, apartment)
}

// Reorder nhận một hoán vị của các index hiện tại; ảnh đại diện đi theo ảnh của nó
func (s *ImageService) Reorder(ctx context.Context, apartmentID string, req *dto.ReorderImagesRequest) (*models.Apartment, error) {
	apartment, err := s.apartments.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	if len(req.Order) != len(apartment.Images) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeImageIndex, "Invalid field: order", apperrors.ErrInvalidInput)
	}

	seen := make([]bool, len(req.Order))
	images := make(datatypes.JSONSlice[string], len(req.Order))
	principal := 0
	for newPos, oldPos := range req.Order {
		if oldPos < 0 || oldPos >= len(seen) || seen[oldPos] {
			return nil, invalidIndex(oldPos)
		}
		seen[oldPos] = true
		images[newPos] = apartment.Images[oldPos]
		if oldPos == apartment.PrincipalImageIndex {
			principal = newPos
		}
	}
	apartment.Images = images
	apartment.PrincipalImageIndex = principal
	return s.save(ctx, apartment)
}

package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/services/logger"
	"rentals/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type memoryApartments struct {
	byID map[string]*models.Apartment
}

func newMemoryApartments(apts ...*models.Apartment) *memoryApartments {
	m := &memoryApartments{byID: map[string]*models.Apartment{}}
	for _, a := range apts {
		m.byID[a.ID] = a
	}
	return m
}

func (m *memoryApartments) FindByID(_ context.Context, id string) (*models.Apartment, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, apperrors.ErrApartmentNotFound
	}
	copied := *a
	copied.Images = append(datatypes.JSONSlice[string]{}, a.Images...)
	return &copied, nil
}

func (m *memoryApartments) Save(_ context.Context, a *models.Apartment) error {
	m.byID[a.ID] = a
	return nil
}

type fakeStorage struct {
	uploaded  []string
	destroyed []string
	failOn    string
}

func (s *fakeStorage) Upload(_ context.Context, file io.Reader, filename string) (string, error) {
	if filename == s.failOn {
		return "", errors.New("cloudinary: 500")
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	s.uploaded = append(s.uploaded, filename)
	return "https://res.cloudinary.com/demo/image/upload/v1/apartments/" + filename, nil
}

func (s *fakeStorage) Destroy(_ context.Context, url string) error {
	s.destroyed = append(s.destroyed, url)
	return nil
}

func withImages(principal int, urls ...string) testutil.ApartmentOption {
	return func(a *models.Apartment) {
		a.Images = datatypes.JSONSlice[string](urls)
		a.PrincipalImageIndex = principal
	}
}

// fileHeaders dựng multipart.FileHeader thật qua một request multipart
func fileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, name := range names {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["files"]
}

func TestImageUploadAppends(t *testing.T) {
	apt := testutil.NewApartment(withImages(0, "a.jpg"))
	store := newMemoryApartments(apt)
	storage := &fakeStorage{}
	svc := NewImageService(store, storage, nil, logger.Nop{})

	updated, err := svc.Upload(context.Background(), apt.ID, fileHeaders(t, "b.jpg", "c.heic"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg", "c.heic"}, storage.uploaded)
	require.Len(t, updated.Images, 3)
	assert.Equal(t, "a.jpg", updated.Images[0])
	assert.Contains(t, updated.Images[2], "c.heic")
}

func TestImageUploadFailure(t *testing.T) {
	apt := testutil.NewApartment()
	svc := NewImageService(newMemoryApartments(apt), &fakeStorage{failOn: "bad.png"}, nil, logger.Nop{})

	_, err := svc.Upload(context.Background(), apt.ID, fileHeaders(t, "bad.png"))
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeStorage, appErr.Code)
	assert.Equal(t, "Upload failed", appErr.Message)
}

func TestImageUploadPartialFailureRemovesUploaded(t *testing.T) {
	apt := testutil.NewApartment(withImages(0, "a.jpg"))
	store := newMemoryApartments(apt)
	storage := &fakeStorage{failOn: "bad.png"}
	svc := NewImageService(store, storage, nil, logger.Nop{})

	_, err := svc.Upload(context.Background(), apt.ID, fileHeaders(t, "b.jpg", "c.jpg", "bad.png"))
	require.Error(t, err)
	assert.Equal(t, []string{"b.jpg", "c.jpg"}, storage.uploaded)
	require.Len(t, storage.destroyed, 2)
	assert.Contains(t, storage.destroyed[0], "b.jpg")
	assert.Contains(t, storage.destroyed[1], "c.jpg")

	current, err := store.FindByID(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, []string(current.Images))
}

func TestDeleteImageFixesPrincipal(t *testing.T) {
	cases := []struct {
		name      string
		principal int
		index     int
		want      int
	}{
		{"before principal", 2, 0, 1},
		{"principal itself", 1, 1, 0},
		{"after principal", 0, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apt := testutil.NewApartment(withImages(tc.principal, "a", "b", "c"))
			storage := &fakeStorage{}
			svc := NewImageService(newMemoryApartments(apt), storage, nil, logger.Nop{})

			updated, err := svc.DeleteImage(context.Background(), apt.ID, tc.index)
			require.NoError(t, err)
			assert.Len(t, updated.Images, 2)
			assert.Equal(t, tc.want, updated.PrincipalImageIndex)
			assert.Len(t, storage.destroyed, 1)
		})
	}
}

func TestDeleteImageOutOfRange(t *testing.T) {
	apt := testutil.NewApartment(withImages(0, "a"))
	svc := NewImageService(newMemoryApartments(apt), &fakeStorage{}, nil, logger.Nop{})

	_, err := svc.DeleteImage(context.Background(), apt.ID, 3)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeImageIndex, apperrors.GetAppError(err).Code)

	_, err = svc.DeleteImage(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, apperrors.ErrApartmentNotFound)
}

func TestSetPrincipal(t *testing.T) {
	apt := testutil.NewApartment(withImages(0, "a", "b"))
	svc := NewImageService(newMemoryApartments(apt), &fakeStorage{}, nil, logger.Nop{})

	updated, err := svc.SetPrincipal(context.Background(), apt.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.PrincipalImageIndex)

	_, err = svc.SetPrincipal(context.Background(), apt.ID, 2)
	assert.Error(t, err)
}

func TestReorderKeepsPrincipalImage(t *testing.T) {
	apt := testutil.NewApartment(withImages(1, "a", "b", "c"))
	svc := NewImageService(newMemoryApartments(apt), &fakeStorage{}, nil, logger.Nop{})

	updated, err := svc.Reorder(context.Background(), apt.ID, &dto.ReorderImagesRequest{Order: []int{2, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, []string(updated.Images))
	assert.Equal(t, 2, updated.PrincipalImageIndex)
	assert.Equal(t, "b", updated.Images[updated.PrincipalImageIndex])

	for _, order := range [][]int{{0, 1}, {0, 0, 1}, {0, 1, 5}} {
		_, err := svc.Reorder(context.Background(), apt.ID, &dto.ReorderImagesRequest{Order: order})
		assert.Error(t, err, "order %v", order)
	}
}

func TestPublicIDFromURL(t *testing.T) {
	assert.Equal(t, "apartments/abc", PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1712/apartments/abc.jpg"))
	assert.Equal(t, "abc", PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/abc.png"))
	assert.Equal(t, "", PublicIDFromURL("https://example.com/abc.png"))
}

func TestCloudinaryStorageDisabled(t *testing.T) {
	var storage *CloudinaryStorage
	_, err := storage.Upload(context.Background(), bytes.NewReader(nil), "a.jpg")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, NewCloudinaryStorage(nil, "x").Destroy(context.Background(), "u"), ErrStorageDisabled)
}

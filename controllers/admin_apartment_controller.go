package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"rentals/dto"
	"rentals/models"
	"rentals/response"
	"rentals/services/logger"
	"rentals/validator"

	"github.com/gin-gonic/gin"
)

// ApartmentAdmin là phần quản lý căn hộ của admin
type ApartmentAdmin interface {
	Get(ctx context.Context, id string) (*models.Apartment, error)
	List(ctx context.Context, query dto.ApartmentListQuery) ([]models.Apartment, int64, error)
	Create(ctx context.Context, req *dto.ApartmentRequest) (*models.Apartment, error)
	Update(ctx context.Context, id string, req *dto.ApartmentRequest) (*models.Apartment, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type ImageManager interface {
	Upload(ctx context.Context, apartmentID string, files []*multipart.FileHeader) (*models.Apartment, error)
	DeleteImage(ctx context.Context, apartmentID string, index int) (*models.Apartment, error)
	SetPrincipal(ctx context.Context, apartmentID string, index int) (*models.Apartment, error)
	Reorder(ctx context.Context, apartmentID string, req *dto.ReorderImagesRequest) (*models.Apartment, error)
}

type OverrideManager interface {
	List(ctx context.Context, apartmentID string) ([]models.ApartmentAvailability, error)
	Create(ctx context.Context, apartmentID string, req *dto.AvailabilityRequest) (*models.ApartmentAvailability, error)
	Update(ctx context.Context, id string, req *dto.AvailabilityRequest) (*models.ApartmentAvailability, error)
	Delete(ctx context.Context, id string) error
}

type AdminApartmentControllerOptions struct {
	Apartments ApartmentAdmin
	Images     ImageManager
	Overrides  OverrideManager
	Logger     logger.Logger
}

// AdminApartmentController quản lý căn hộ, ảnh và lịch khóa
type AdminApartmentController struct {
	apartments ApartmentAdmin
	images     ImageManager
	overrides  OverrideManager
	logger     logger.Logger
}

func NewAdminApartmentController(opts AdminApartmentControllerOptions) *AdminApartmentController {
	return &AdminApartmentController{
		apartments: opts.Apartments,
		images:     opts.Images,
		overrides:  opts.Overrides,
		logger:     opts.Logger,
	}
}

// bindJSON đọc body và chạy validator; trả false khi đã ghi response lỗi
func (h *AdminApartmentController) bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if err := validator.Struct(target); err != nil {
		respondError(c, h.logger, err)
		return false
	}
	return true
}

// List
// @Summary List apartments (admin)
// @Tags admin
// @Produce json
// @Param active query bool false "Filter by is_active"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /admin/apartments [get]
func (h *AdminApartmentController) List(c *gin.Context) {
	var q dto.ApartmentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query")
		return
	}
	apartments, total, err := h.apartments.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	page := q.PageQuery.Normalize()
	response.SuccessWithPagination(c, apartments, page.Page, page.Limit, total)
}

// Detail
// @Summary Apartment detail, including inactive ones
// @Tags admin
// @Produce json
// @Param id path string true "Apartment id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/apartments/{id} [get]
func (h *AdminApartmentController) Detail(c *gin.Context) {
	apartment, err := h.apartments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apartment)
}

// Create
// @Summary Create an apartment
// @Tags admin
// @Accept json
// @Produce json
// @Param apartment body dto.ApartmentRequest true "Apartment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/apartments [post]
func (h *AdminApartmentController) Create(c *gin.Context) {
	var req dto.ApartmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	apartment, err := h.apartments.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, apartment)
}

// Update
// @Summary Replace an apartment
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Apartment id"
// @Param apartment body dto.ApartmentRequest true "Apartment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/apartments/{id} [put]
func (h *AdminApartmentController) Update(c *gin.Context) {
	var req dto.ApartmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	apartment, err := h.apartments.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apartment)
}

// SetActive
// @Summary Show or hide an apartment
// @Tags admin
// @Accept json
// @Param id path string true "Apartment id"
// @Param body body dto.SetActiveRequest true "is_active"
// @Success 204
// @Router /admin/apartments/{id}/active [patch]
func (h *AdminApartmentController) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.apartments.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete
// @Summary Delete an apartment with its bookings and overrides
// @Tags admin
// @Param id path string true "Apartment id"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/apartments/{id} [delete]
func (h *AdminApartmentController) Delete(c *gin.Context) {
	if err := h.apartments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImages
// @Summary Upload images
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Apartment id"
// @Param files formData file true "Images"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /admin/apartments/{id}/images [post]
func (h *AdminApartmentController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		response.BadRequest(c, "Missing required field: files")
		return
	}

	apartment, err := h.images.Upload(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apartment)
}

// DeleteImage
// @Summary Delete the image at index
// @Tags admin
// @Produce json
// @Param id path string true "Apartment id"
// @Param index path int true "Image index"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/apartments/{id}/images/{index} [delete]
func (h *AdminApartmentController) DeleteImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid field: index")
		return
	}
	apartment, err := h.images.DeleteImage(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apartment)
}

// SetPrincipalImage
// @Summary Choose the principal image
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Apartment id"
// @Param body body dto.PrincipalImageRequest true "index"
// @Success 200 {object} response.Response
// @Router /admin/apartments/{id}/images/principal [put]
func (h *AdminApartmentController) SetPrincipalImage(c *gin.Context) {
	var req dto.PrincipalImageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	apartment, err := h.images.SetPrincipal(c.Request.Context(), c.Param("id"), *req.Index)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apartment)
}

// ReorderImages
// @Summary Reorder images
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Apartment id"
// @Param body body dto.ReorderImagesRequest true "New order as old indexes"
// @Success 200 {object} response.Response
// @Router /admin/apartments/{id}/images/order [put]
func (h *AdminApartmentController) ReorderImages(c *gin.Context) {
	var req dto.ReorderImagesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	apartment, err := h.images.Reorder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apartment)
}

// ListOverrides
// @Summary Availability overrides of an apartment
// @Tags admin
// @Produce json
// @Param id path string true "Apartment id"
// @Success 200 {object} response.Response
// @Router /admin/apartments/{id}/availability [get]
func (h *AdminApartmentController) ListOverrides(c *gin.Context) {
	rows, err := h.overrides.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, rows)
}

// CreateOverride
// @Summary Block (or reopen) a date range
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Apartment id"
// @Param body body dto.AvailabilityRequest true "Range"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/apartments/{id}/availability [post]
func (h *AdminApartmentController) CreateOverride(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	row, err := h.overrides.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, row)
}

// UpdateOverride
// @Summary Change an availability override
// @Tags admin
// @Accept json
// @Produce json
// @Param overrideId path string true "Override id"
// @Param body body dto.AvailabilityRequest true "Range"
// @Success 200 {object} response.Response
// @Router /admin/availability/{overrideId} [put]
func (h *AdminApartmentController) UpdateOverride(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	row, err := h.overrides.Update(c.Request.Context(), c.Param("overrideId"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, row)
}

// DeleteOverride
// @Summary Remove an availability override
// @Tags admin
// @Param overrideId path string true "Override id"
// @Success 204
// @Router /admin/availability/{overrideId} [delete]
func (h *AdminApartmentController) DeleteOverride(c *gin.Context) {
	if err := h.overrides.Delete(c.Request.Context(), c.Param("overrideId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"context"
	"errors"
	"net/http"

	"rentals/builders"
	"rentals/dto"
	apperrors "rentals/errors"
	"rentals/middleware"
	"rentals/models"
	"rentals/response"
	"rentals/services/logger"
	"rentals/validator"

	"github.com/gin-gonic/gin"
)

// BookingManager là phần booking service mà controller cần
type BookingManager interface {
	CreateBooking(ctx context.Context, booking *models.Booking, locale string) (*models.Booking, dto.EmailOutcome, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, locale string) (*dto.UpdateBookingStatusResponse, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, query dto.BookingListQuery) ([]models.Booking, int64, error)
	DeleteBooking(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (*dto.DashboardSummary, error)
}

type BookingController struct {
	bookings BookingManager
	logger   logger.Logger
}

func NewBookingController(bookings BookingManager, log logger.Logger) *BookingController {
	return &BookingController{bookings: bookings, logger: log}
}

// Create
// @Summary Request a booking
// @Description Creates a pending booking and emails host and guest
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Booking request"
// @Success 200 {object} dto.CreateBookingResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /bookings [post]
func (h *BookingController) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Body booking không hợp lệ: %v", err)
		response.ServerError(c)
		return
	}

	checkIn, checkOut, err := validator.ValidateBookingRequest(&req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	booking := builders.NewBookingBuilder().
		WithApartment(req.ApartmentID).
		WithGuestInfo(req.GuestName, req.GuestPhone, req.GuestEmail).
		WithStay(checkIn, checkOut).
		WithGuests(req.TotalGuests).
		WithTotalPrice(req.TotalPrice).
		WithNotes(req.Notes).
		Build()

	created, emails, err := h.bookings.CreateBooking(c.Request.Context(), booking, middleware.Locale(c))
	switch {
	case err == nil && created == nil, errors.Is(err, apperrors.ErrBookingNotCreated):
		h.logger.Error("Booking không được tạo cho căn hộ %s", req.ApartmentID)
		response.Error(c, http.StatusInternalServerError, "Failed to create booking")
		return
	case errors.Is(err, apperrors.ErrApartmentNotFound):
		response.NotFound(c, "Apartment not found")
		return
	case err != nil:
		h.logger.Error("Tạo booking thất bại: %v", err)
		response.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, dto.CreateBookingResponse{
		Success: true,
		Booking: created,
		Emails:  emails,
	})
}

// UpdateStatus
// @Summary Change the status of a booking
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.UpdateBookingStatusRequest true "id and status"
// @Success 200 {object} dto.UpdateBookingStatusResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/bookings/status [put]
func (h *BookingController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}
	if req.ID == "" {
		response.BadRequest(c, "Missing required field: id")
		return
	}
	if req.Status == "" {
		response.BadRequest(c, "Missing required field: status")
		return
	}
	status, err := validator.ValidateStatus(req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.bookings.UpdateStatus(c.Request.Context(), req.ID, status, middleware.Locale(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			response.NotFound(c, "Booking not found")
			return
		}
		h.logger.Error("Cập nhật trạng thái booking %s thất bại: %v", req.ID, err)
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List
// @Summary List bookings
// @Tags admin
// @Produce json
// @Param status query string false "pending | confirmed | cancelled"
// @Param apartment_id query string false "Apartment id"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /admin/bookings [get]
func (h *BookingController) List(c *gin.Context) {
	var q dto.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query")
		return
	}
	bookings, total, err := h.bookings.ListBookings(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	page := q.PageQuery.Normalize()
	response.SuccessWithPagination(c, bookings, page.Page, page.Limit, total)
}

// Detail
// @Summary Booking detail
// @Tags admin
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/bookings/{id} [get]
func (h *BookingController) Detail(c *gin.Context) {
	booking, err := h.bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, booking)
}

// Delete
// @Summary Delete a booking
// @Tags admin
// @Param id path string true "Booking id"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/bookings/{id} [delete]
func (h *BookingController) Delete(c *gin.Context) {
	if err := h.bookings.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard
// @Summary Admin dashboard counters
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *BookingController) Dashboard(c *gin.Context) {
	summary, err := h.bookings.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, summary)
}

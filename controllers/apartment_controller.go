package controllers

import (
	"context"
	"strings"

	"rentals/dto"
	"rentals/middleware"
	"rentals/models"
	"rentals/response"
	"rentals/services/logger"
	"rentals/validator"

	"github.com/gin-gonic/gin"
)

// ApartmentSearcher là phần tìm kiếm mà controller cần
type ApartmentSearcher interface {
	Search(ctx context.Context, sessionID string, filters *dto.SearchFilters) (*dto.SearchResponse, error)
	Refine(ctx context.Context, sessionID string, filters *dto.SearchFilters, explicitGuests bool) (*dto.SearchResponse, error)
	LastFilters(ctx context.Context, sessionID string) (*dto.SearchFilters, error)
}

// ApartmentReader đọc căn hộ công khai
type ApartmentReader interface {
	GetPublic(ctx context.Context, id string) (*dto.ApartmentView, error)
	MapMarkers(ctx context.Context, precision uint) ([]dto.MapMarker, error)
	Calendar(ctx context.Context, id string, from, to models.Date) (*dto.CalendarResponse, error)
}

type ApartmentControllerOptions struct {
	Search     ApartmentSearcher
	Apartments ApartmentReader
	Logger     logger.Logger
}

// ApartmentController phục vụ API công khai của căn hộ
type ApartmentController struct {
	search     ApartmentSearcher
	apartments ApartmentReader
	logger     logger.Logger
}

func NewApartmentController(opts ApartmentControllerOptions) *ApartmentController {
	return &ApartmentController{
		search:     opts.Search,
		apartments: opts.Apartments,
		logger:     opts.Logger,
	}
}

// Search
// @Summary Search bookable apartments
// @Description Active apartments with enough capacity, free for the dates, with every requested amenity
// @Tags apartments
// @Produce json
// @Param check_in query string false "YYYY-MM-DD"
// @Param check_out query string false "YYYY-MM-DD"
// @Param guests query int false "Guests (default 1)"
// @Param amenities query []string false "Amenity keys, comma separated or repeated"
// @Param q query string false "Free text over title and address"
// @Param refine query bool false "Merge with the previous search of this session"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /apartments [get]
func (h *ApartmentController) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query")
		return
	}

	filters, err := validator.ParseSearchQuery(q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if filters.HasDates() && filters.CheckOut.Before(*filters.CheckIn) {
		response.BadRequest(c, "check_out must be after check_in")
		return
	}

	sessionID := middleware.SessionID(c)
	var result *dto.SearchResponse
	if c.Query("refine") == "true" {
		result, err = h.search.Refine(c.Request.Context(), sessionID, filters, strings.TrimSpace(q.Guests) != "")
	} else {
		result, err = h.search.Search(c.Request.Context(), sessionID, filters)
	}
	if err != nil {
		h.logger.Error("Tìm kiếm thất bại: %v", err)
		response.ServiceUnavailable(c, "Search temporarily unavailable")
		return
	}
	c.JSON(200, result)
}

// LastSearch
// @Summary Filters of the previous search of this session
// @Tags apartments
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} response.Response
// @Router /apartments/last-search [get]
func (h *ApartmentController) LastSearch(c *gin.Context) {
	filters, err := h.search.LastFilters(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Warn("Không đọc được bộ lọc của phiên: %v", err)
	}
	response.Success(c, filters)
}

// Detail
// @Summary Apartment detail
// @Tags apartments
// @Produce json
// @Param id path string true "Apartment id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /apartments/{id} [get]
func (h *ApartmentController) Detail(c *gin.Context) {
	view, err := h.apartments.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, view)
}

// Map
// @Summary Apartment markers grouped by geohash cell
// @Tags apartments
// @Produce json
// @Param precision query int false "Geohash precision 1..9 (default 5)"
// @Success 200 {object} response.Response
// @Router /apartments/map [get]
func (h *ApartmentController) Map(c *gin.Context) {
	var q dto.MapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid field: precision")
		return
	}
	markers, err := h.apartments.MapMarkers(c.Request.Context(), q.Precision)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, markers)
}

// Calendar
// @Summary Blocked date ranges of an apartment
// @Tags apartments
// @Produce json
// @Param id path string true "Apartment id"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /apartments/{id}/calendar [get]
func (h *ApartmentController) Calendar(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query")
		return
	}
	from, to, err := validator.ValidateDateRange(q.From, q.To, "from", "to")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	calendar, err := h.apartments.Calendar(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(200, calendar)
}

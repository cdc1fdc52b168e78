package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// Response messages shared with the admin dashboard
const (
	MsgDataUpdated      = "Data updated successfully"
	MsgReadFailed       = "Error reading website data"
	MsgWriteFailed      = "Error writing website data"
	MsgInvalidRequest   = "Invalid request format"
	MsgValidationFailed = "Validation failed"
)

const (
	headerETag    = "ETag"
	headerIfMatch = "If-Match"
)

// WebsiteDataHandler serves the whole site document
type WebsiteDataHandler struct {
	service ports.WebsiteService
}

// NewWebsiteDataHandler creates a new website data handler
func NewWebsiteDataHandler(service ports.WebsiteService) *WebsiteDataHandler {
	return &WebsiteDataHandler{
		service: service,
	}
}

// GetWebsiteData godoc
// @Summary Get the site document
// @Description Returns orders and team; the ETag header carries the document revision
// @Tags websiteData
// @Produce json
// @Success 200 {object} entities.Document
// @Failure 500 {object} ErrorResponse
// @Router /api/websiteData [get]
func (h *WebsiteDataHandler) GetWebsiteData(c echo.Context) error {
	doc, rev, err := h.service.GetDocument(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, MsgReadFailed).SetInternal(err)
	}

	c.Response().Header().Set(headerETag, quoteETag(rev))
	return c.JSON(http.StatusOK, doc)
}

// UpdateWebsiteData godoc
// @Summary Replace the site document
// @Description An If-Match header makes the write conditional on the document not having changed since it was read
// @Tags websiteData
// @Accept json
// @Produce json
// @Param document body entities.Document true "Full document"
// @Param If-Match header string false "Revision from a previous GET"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/websiteData [post]
func (h *WebsiteDataHandler) UpdateWebsiteData(c echo.Context) error {
	var doc entities.Document
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}

	expected := parseIfMatch(c.Request().Header.Get(headerIfMatch))

	rev, err := h.service.ReplaceDocument(c.Request().Context(), &doc, expected)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	c.Response().Header().Set(headerETag, quoteETag(rev))
	return c.JSON(http.StatusOK, MessageResponse{Message: MsgDataUpdated})
}

// CatalogHandler serves the bundled reference content
type CatalogHandler struct {
	service ports.WebsiteService
}

func NewCatalogHandler(service ports.WebsiteService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetCatalog godoc
// @Summary Get company, services, plans, contact and testimonials
// @Tags catalog
// @Produce json
// @Success 200 {object} entities.Catalog
// @Router /api/catalog [get]
func (h *CatalogHandler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Catalog())
}

// StatsHandler serves dashboard counters
type StatsHandler struct {
	service ports.WebsiteService
}

func NewStatsHandler(service ports.WebsiteService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats godoc
// @Summary Count orders per status and team members
// @Tags stats
// @Produce json
// @Success 200 {object} entities.Stats
// @Failure 500 {object} ErrorResponse
// @Router /api/stats [get]
func (h *StatsHandler) GetStats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return toHTTPError(err, MsgReadFailed)
	}
	return c.JSON(http.StatusOK, stats)
}

// Utility functions and helper types

// toHTTPError maps service errors onto status codes; fallback is the message for storage failures
func toHTTPError(err error, fallback string) *echo.HTTPError {
	var verrs entities.ValidationErrors
	var readErr *entities.ReadError

	switch {
	case errors.As(err, &verrs):
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{
			Message: MsgValidationFailed,
			Details: verrs,
		})
	case errors.Is(err, entities.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	case errors.Is(err, entities.ErrTeamMemberNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Team member not found")
	case errors.Is(err, entities.ErrRevisionMismatch):
		return echo.NewHTTPError(http.StatusPreconditionFailed, "Website data was changed by another request")
	case errors.As(err, &readErr):
		return echo.NewHTTPError(http.StatusInternalServerError, MsgReadFailed).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
	}
}

// validationError renders an echo.Validator failure the same way as service validation
func validationError(err error) *echo.HTTPError {
	return toHTTPError(err, MsgInvalidRequest)
}

func parseID(c echo.Context, what string) (entities.ID, error) {
	id, err := entities.ParseID(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+what+" ID")
	}
	return id, nil
}

func quoteETag(rev string) string {
	return `"` + rev + `"`
}

// parseIfMatch returns the revision named by an If-Match header; "*" and absent mean unconditional
func parseIfMatch(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || header == "*" {
		return ""
	}
	header = strings.TrimPrefix(header, "W/")
	return strings.Trim(header, `"`)
}

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

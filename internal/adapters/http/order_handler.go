package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	service ports.WebsiteService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service ports.WebsiteService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// ListOrders godoc
// @Summary List orders
// @Description Newest first, optionally only orders with the given status
// @Tags orders
// @Produce json
// @Param status query string false "pending, completed or cancelled"
// @Success 200 {array} entities.Order
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	filter := ports.OrderFilter{}

	if status := c.QueryParam("status"); status != "" {
		orderStatus, err := entities.ParseOrderStatus(status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter").SetInternal(err)
		}
		filter.Status = &orderStatus
	}

	orders, err := h.service.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err, MsgReadFailed)
	}

	return c.JSON(http.StatusOK, orders)
}

// CreateOrder godoc
// @Summary Place an order for a subscription plan
// @Tags orders
// @Accept json
// @Produce json
// @Param request body entities.NewOrder true "Plan snapshot and customer details"
// @Success 201 {object} entities.Order
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req entities.NewOrder
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}

	order, err := h.service.AddOrder(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	return c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus godoc
// @Summary Change the status of an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body ports.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} entities.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := parseID(c, "order")
	if err != nil {
		return err
	}

	var req ports.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	order, err := h.service.UpdateOrderStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	return c.JSON(http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} entities.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	orderID, err := parseID(c, "order")
	if err != nil {
		return err
	}

	order, err := h.service.DeleteOrder(c.Request().Context(), orderID)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	return c.JSON(http.StatusOK, order)
}

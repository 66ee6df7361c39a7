package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stridewear/storefront-api/internal/core/domain/order"
	"github.com/stridewear/storefront-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createOrder(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req order.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}

	created, err := s.orderSvc.Checkout(c.Request().Context(), userID, &req)
	if err != nil {
		s.logger.WithError(err).Error("checkout failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create order")
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) listOrders(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	orders, err := s.orderSvc.ListOrders(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list orders")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

func (s *Server) getOrder(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	orderNumber := c.Param("number")
	o, err := s.orderSvc.GetOrder(c.Request().Context(), userID, orderNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	return c.JSON(http.StatusOK, o)
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

package activitylog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/genhealth/genhealth/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/activity-logs", h.List)
	e.GET("/activity-logs/order/:order_id", h.ListByOrder)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	entries, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Skip)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, p.Limit, p.Skip))
}

// ListByOrder returns the trail for one order. An id with no entries is
// not an error: the response is an empty page.
func (h *Handler) ListByOrder(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	p := pagination.FromContext(c)
	entries, total, err := h.svc.ListByOrder(c.Request().Context(), orderID, p.Limit, p.Skip)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, p.Limit, p.Skip))
}

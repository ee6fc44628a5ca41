package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nycbookings/api/internal/service"
	"github.com/nycbookings/api/internal/util"
)

type ViewStatsHandler struct {
	stats      *service.PropertyViewStatsService
	properties *service.PropertyService
}

// RegisterViewStats mounts the admin view-stats endpoint. When no
// Elasticsearch client is configured the endpoint reports the feature as
// unavailable instead of being absent, so the dashboard can explain itself.
func RegisterViewStats(e *echo.Echo, stats *service.PropertyViewStatsService, properties *service.PropertyService, auth *service.AuthService) {
	handler := &ViewStatsHandler{stats: stats, properties: properties}

	group := e.Group("/api/admin/properties", RequireAuth(auth), RequireAdmin())
	group.GET("/:id/view-stats", handler.get)
}

func (h *ViewStatsHandler) get(c echo.Context) error {
	if !h.stats.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, adminError("View statistics are not configured"))
	}

	property, err := h.properties.AdminGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, adminError("Property not found"))
		}
		c.Logger().Errorf("view stats property lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, adminError("Failed to fetch property"))
	}

	forceRefresh := c.QueryParam("refresh") == "true"
	result, err := h.stats.GetViewStats(c.Request().Context(), property, forceRefresh)
	if err != nil {
		c.Logger().Errorf("view stats: %v", err)
		return c.JSON(http.StatusServiceUnavailable, adminError("View statistics are temporarily unavailable"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "View statistics fetched successfully",
		"data":    result,
		"error":   nil,
	})
}

package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/service"
	"github.com/nycbookings/api/internal/util"
)

type PropertyHandler struct {
	properties *service.PropertyService
}

func RegisterProperties(e *echo.Echo, properties *service.PropertyService) {
	handler := &PropertyHandler{properties: properties}

	e.GET("/api/properties", handler.search)
	e.GET("/api/properties/:id", handler.get)
}

// RegisterAdminProperties mounts the admin CRUD surface. Responses use the
// {message, data, error} envelope the admin dashboard consumes.
func RegisterAdminProperties(e *echo.Echo, properties *service.PropertyService, auth *service.AuthService) {
	handler := &PropertyHandler{properties: properties}

	group := e.Group("/api/admin/properties", RequireAuth(auth), RequireAdmin())
	group.GET("", handler.adminList)
	group.POST("", handler.adminCreate)
	group.GET("/:id", handler.adminGet)
	group.PUT("/:id", handler.adminUpdate)
	group.DELETE("/:id", handler.adminDelete)
	group.PUT("/:id/reviews", handler.adminReplaceReviews)
}

func (h *PropertyHandler) search(c echo.Context) error {
	filter := domain.PropertyFilter{
		Location:    strings.TrimSpace(c.QueryParam("location")),
		MinPrice:    parseIntParam(c, "minPrice"),
		MaxPrice:    parseIntParam(c, "maxPrice"),
		MinBedrooms: parseIntParam(c, "bedrooms"),
		MinGuests:   parseIntParam(c, "guests"),
	}
	page, limit := pagingParams(c)

	result, err := h.properties.Search(c.Request().Context(), filter, page, limit)
	if err != nil {
		c.Logger().Errorf("search properties: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"data": util.Envelope{
			"properties": result.Properties,
			"pagination": paginationEnvelope(result),
		},
	})
}

func (h *PropertyHandler) get(c echo.Context) error {
	property, err := h.properties.GetActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("Property not found"))
		}
		c.Logger().Errorf("get property: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"data": util.Envelope{"property": property},
	})
}

func (h *PropertyHandler) adminList(c echo.Context) error {
	page, limit := pagingParams(c)
	result, err := h.properties.AdminList(c.Request().Context(), strings.TrimSpace(c.QueryParam("search")), page, limit)
	if err != nil {
		c.Logger().Errorf("admin list properties: %v", err)
		return c.JSON(http.StatusInternalServerError, adminError("Failed to fetch properties"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Properties fetched successfully",
		"data": util.Envelope{
			"properties": result.Properties,
			"pagination": paginationEnvelope(result),
		},
		"error": nil,
	})
}

func (h *PropertyHandler) adminGet(c echo.Context) error {
	property, err := h.properties.AdminGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, adminError("Property not found"))
		}
		c.Logger().Errorf("admin get property: %v", err)
		return c.JSON(http.StatusInternalServerError, adminError("Failed to fetch property"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Property fetched successfully",
		"data":    property,
		"error":   nil,
	})
}

func (h *PropertyHandler) adminCreate(c echo.Context) error {
	var property domain.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, adminError("invalid request body"))
	}

	if err := util.Validate(
		util.Rule{Field: "title", Value: property.Title, Checks: []util.Check{util.Required}},
		util.Rule{Field: "location", Value: property.Location, Checks: []util.Check{util.Required}},
	); err != nil {
		return c.JSON(http.StatusBadRequest, adminError(err.Error()))
	}

	created, err := h.properties.Create(c.Request().Context(), &property)
	if err != nil {
		c.Logger().Errorf("admin create property: %v", err)
		return c.JSON(http.StatusInternalServerError, adminError("Failed to create property"))
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"message": "Property created successfully",
		"data":    created,
		"error":   nil,
	})
}

func (h *PropertyHandler) adminUpdate(c echo.Context) error {
	var property domain.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, adminError("invalid request body"))
	}
	property.ID = c.Param("id")

	updated, err := h.properties.Update(c.Request().Context(), &property)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, adminError("Property not found"))
		}
		c.Logger().Errorf("admin update property: %v", err)
		return c.JSON(http.StatusInternalServerError, adminError("Failed to update property"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Property updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (h *PropertyHandler) adminDelete(c echo.Context) error {
	if err := h.properties.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, adminError("Property not found"))
		}
		c.Logger().Errorf("admin delete property: %v", err)
		return c.JSON(http.StatusInternalServerError, adminError("Failed to delete property"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Property deleted successfully",
		"data":    nil,
		"error":   nil,
	})
}

func (h *PropertyHandler) adminReplaceReviews(c echo.Context) error {
	var body struct {
		Reviews domain.Reviews `json:"reviews"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, adminError("invalid request body"))
	}

	property, err := h.properties.ReplaceReviews(c.Request().Context(), c.Param("id"), body.Reviews)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, adminError("Property not found"))
		}
		c.Logger().Errorf("admin replace reviews: %v", err)
		return c.JSON(http.StatusInternalServerError, adminError("Failed to update reviews"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Reviews updated successfully",
		"data":    property,
		"error":   nil,
	})
}

func adminError(message string) util.Envelope {
	return util.Envelope{"message": nil, "data": nil, "error": message}
}

func paginationEnvelope(result *service.PropertyListResult) util.Envelope {
	totalPages := int((result.Total + int64(result.Limit) - 1) / int64(result.Limit))
	return util.Envelope{
		"page":       result.Page,
		"limit":      result.Limit,
		"total":      result.Total,
		"totalPages": totalPages,
	}
}

func pagingParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}

func parseIntParam(c echo.Context, name string) *int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

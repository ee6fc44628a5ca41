package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nycbookings/api/internal/service"
	"github.com/nycbookings/api/internal/util"
)

type WishlistHandler struct {
	wishlist *service.WishlistService
}

func RegisterWishlist(e *echo.Echo, wishlist *service.WishlistService, auth *service.AuthService) {
	handler := &WishlistHandler{wishlist: wishlist}

	group := e.Group("/api/wishlist", RequireAuth(auth))
	group.GET("", handler.list)
	group.POST("", handler.add)
	group.DELETE("", handler.remove)
}

func (h *WishlistHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("Unauthorized"))
	}

	items, err := h.wishlist.List(c.Request().Context(), user.ID)
	if err != nil {
		c.Logger().Errorf("list wishlist: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	return c.JSON(http.StatusOK, util.Data("wishlist", items))
}

func (h *WishlistHandler) add(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("Unauthorized"))
	}

	var req struct {
		PropertyID string `json:"propertyId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := util.Validate(
		util.Rule{Field: "propertyId", Value: req.PropertyID, Checks: []util.Check{util.Required}},
	); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("Property ID is required"))
	}

	item, err := h.wishlist.Add(c.Request().Context(), user.ID, req.PropertyID)
	if err != nil {
		if errors.Is(err, service.ErrWishlistDuplicate) {
			return c.JSON(http.StatusConflict, util.Error("Property already in wishlist"))
		}
		c.Logger().Errorf("add to wishlist: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	return c.JSON(http.StatusCreated, util.Envelope{"item": item})
}

func (h *WishlistHandler) remove(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("Unauthorized"))
	}

	propertyID := c.QueryParam("propertyId")
	if propertyID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("Property ID is required"))
	}

	deleted, err := h.wishlist.Remove(c.Request().Context(), user.ID, propertyID)
	if err != nil {
		c.Logger().Errorf("remove from wishlist: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	return c.JSON(http.StatusOK, util.Envelope{"deletedCount": deleted})
}

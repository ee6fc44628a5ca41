package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/service"
	"github.com/nycbookings/api/internal/util"
)

type ReferralHandler struct {
	referrals *service.ReferralService
}

func RegisterReferral(e *echo.Echo, referrals *service.ReferralService) {
	handler := &ReferralHandler{referrals: referrals}
	e.POST("/api/referral", handler.submit)
}

func (h *ReferralHandler) submit(c echo.Context) error {
	var req ReferralRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := util.Validate(
		util.Rule{Field: "name", Value: req.Name, Checks: []util.Check{util.Required}},
		util.Rule{Field: "email", Value: req.Email, Checks: []util.Check{util.Required, util.EmailFormat}},
		util.Rule{Field: "message", Value: req.Message, Checks: []util.Check{util.Required}},
	); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	referral, err := h.referrals.Submit(c.Request().Context(), &domain.Referral{
		Name:       req.Name,
		AgencyName: req.AgencyName,
		Phone:      req.Phone,
		Email:      req.Email,
		Message:    req.Message,
	})
	if err != nil {
		c.Logger().Errorf("submit referral: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Failed to submit referral"))
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"message":  "Referral submitted successfully",
		"referral": referral,
	})
}

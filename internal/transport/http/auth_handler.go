package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nycbookings/api/internal/service"
	"github.com/nycbookings/api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/forgot-password", handler.forgotPassword)
	group.POST("/reset-password", handler.resetPassword)

	protected := e.Group("/api/auth", RequireAuth(auth))
	protected.GET("/me", handler.me)
	protected.PUT("/profile", handler.updateProfile)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := util.Validate(
		util.Rule{Field: "firstName", Value: req.FirstName, Checks: []util.Check{util.Required}},
		util.Rule{Field: "lastName", Value: req.LastName, Checks: []util.Check{util.Required}},
		util.Rule{Field: "email", Value: req.Email, Checks: []util.Check{util.Required, util.EmailFormat}},
		util.Rule{Field: "password", Value: req.Password, Checks: []util.Check{util.Required, util.MinLen(6)}},
	); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	user, token, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, util.Error("User already exists"))
		}
		c.Logger().Errorf("register: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	return c.JSON(http.StatusCreated, util.Envelope{"user": user, "token": token})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := util.Validate(
		util.Rule{Field: "email", Value: req.Email, Checks: []util.Check{util.Required}},
		util.Rule{Field: "password", Value: req.Password, Checks: []util.Check{util.Required}},
	); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("Email and password are required"))
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error("Invalid credentials"))
		}
		c.Logger().Errorf("login: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	return c.JSON(http.StatusOK, util.Envelope{"user": user, "token": token})
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("Unauthorized"))
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("Unauthorized"))
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	rules := []util.Rule{
		{Field: "firstName", Value: req.FirstName, Checks: []util.Check{util.Required}},
		{Field: "lastName", Value: req.LastName, Checks: []util.Check{util.Required}},
		{Field: "email", Value: req.Email, Checks: []util.Check{util.Required, util.EmailFormat}},
	}
	if req.NewPassword != "" {
		rules = append(rules,
			util.Rule{Field: "currentPassword", Value: req.CurrentPassword, Checks: []util.Check{util.Required}},
			util.Rule{Field: "newPassword", Value: req.NewPassword, Checks: []util.Check{util.MinLen(6)}},
		)
	}
	if err := util.Validate(rules...); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	updated, err := h.auth.UpdateProfile(c.Request().Context(), user.ID, service.UpdateProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCurrentPasswordMismatch):
			return c.JSON(http.StatusBadRequest, util.Error("Current password is incorrect"))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("User not found"))
		default:
			c.Logger().Errorf("update profile: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{"user": updated})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := util.Validate(
		util.Rule{Field: "email", Value: req.Email, Checks: []util.Check{util.Required}},
	); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("Email is required"))
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		c.Logger().Errorf("forgot password: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
	}

	// Same body whether or not the account exists.
	return c.JSON(http.StatusOK, util.Envelope{
		"message": "If an account with that email exists, we have sent a password reset link.",
	})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if req.Token == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("Token and password are required"))
	}
	if err := util.Validate(
		util.Rule{Field: "password", Value: req.Password, Checks: []util.Check{util.MinLen(6)}},
	); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	user, err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			return c.JSON(http.StatusBadRequest, util.Error("Invalid or expired reset token"))
		case errors.Is(err, service.ErrResetTokenExpired):
			return c.JSON(http.StatusBadRequest, util.Error("Reset token has expired"))
		default:
			c.Logger().Errorf("reset password: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("Internal server error"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Password reset successful",
		"user":    user,
	})
}

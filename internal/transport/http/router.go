package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nycbookings/api/internal/util"
)

// NewRouter builds the echo instance carrying the middleware every route
// shares: panic recovery, security headers, CORS, and request logging.
func NewRouter(allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	registerLogging(e)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(corsConfig(allowOrigins)))

	e.GET("/health", health)
	return e
}

// corsConfig allows credentialed requests only for an explicit origin list.
// A wildcard origin cannot carry credentials, so it downgrades the whole
// config rather than being silently ignored by browsers.
func corsConfig(allowOrigins []string) middleware.CORSConfig {
	wildcard := false
	for _, origin := range allowOrigins {
		if origin == "*" {
			wildcard = true
			break
		}
	}

	return middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
		AllowCredentials: !wildcard,
	}
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Envelope{
		"status":  "ok",
		"service": "nycbookings-api",
	})
}

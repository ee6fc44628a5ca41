package http

import (
	"net/http"
	"os"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/nycbookings/api/internal/util"
)

const swaggerSpecPath = "docs/swagger.yaml"

// RegisterSwagger serves the API reference under /swagger. The spec is kept
// as YAML on disk and converted to JSON on request for the UI.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/doc.json", serveSwaggerSpec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func serveSwaggerSpec(c echo.Context) error {
	data, err := os.ReadFile(swaggerSpecPath)
	if err != nil {
		c.Logger().Errorf("load swagger spec: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
	}
	jsonSpec, err := yaml.YAMLToJSON(data)
	if err != nil {
		c.Logger().Errorf("convert swagger spec: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to parse swagger spec"))
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
}

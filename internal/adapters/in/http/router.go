package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"orderledger/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// MetricsCollector observes requests and exposes what it collected.
type MetricsCollector interface {
	RequestObserver
	Handler() http.Handler
}

// NewRouter builds the echo instance: middleware, the API under BaseURL and the
// operational endpoints /health, /metrics, /openapi.json and /swagger/*.
func NewRouter(server servers.ServerInterface, collector MetricsCollector, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	openAPIJSON, err := swagger.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(MetricsMiddleware(collector))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlersWithBaseURL(e, server, BaseURL)

	return e, nil
}

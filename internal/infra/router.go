package infra

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/ledger/internal/handlers"
	"github.com/umalmyha/ledger/internal/middleware"
	"github.com/umalmyha/ledger/internal/service"
	"github.com/umalmyha/ledger/internal/validation"
)

// Router wires dashboard, JSON API and metrics endpoints
func Router(ledger *service.Ledger, validator *validation.Validator, gatherer prometheus.Gatherer, logger logrus.FieldLogger) (*echo.Echo, error) {
	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(logger)

	// Middleware
	e.Use(middleware.RequestLogger(logger))

	// Handlers
	dashboardHandler := handlers.NewDashboardHandler(ledger, logger)
	customerHandler := handlers.NewCustomerHTTPHandler(ledger)

	// Dashboard
	dashboardHandler.Register(e)

	// API routes
	customersAPI := e.Group("/api/customers")
	customersAPI.GET("", customerHandler.GetAll)
	customersAPI.POST("", customerHandler.Post)
	customersAPI.PUT("/:id", customerHandler.Put)
	customersAPI.DELETE("", customerHandler.Delete)

	// Metrics
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return e, nil
}

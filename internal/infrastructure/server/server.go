package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/weblinkcreator/siteapi/docs"
	httpHandlers "github.com/weblinkcreator/siteapi/internal/adapters/http"
	"github.com/weblinkcreator/siteapi/internal/application/services"
	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/config"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/logger"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/metrics"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	store   ports.DocumentStore
	metrics *metrics.Metrics
}

// New creates a new server instance. m may be nil when metrics are disabled.
func New(cfg *config.Config, svc ports.WebsiteService, store ports.DocumentStore, m *metrics.Metrics, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = services.NewValidator()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug || cfg.App.IsDevelopment()

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize handlers
	dataHandler := httpHandlers.NewWebsiteDataHandler(svc)
	orderHandler := httpHandlers.NewOrderHandler(svc)
	teamHandler := httpHandlers.NewTeamHandler(svc)
	catalogHandler := httpHandlers.NewCatalogHandler(svc)
	statsHandler := httpHandlers.NewStatsHandler(svc)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger.WithComponent("http"),
		store:   store,
		metrics: m,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if cfg.Metrics.Enabled && m != nil {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(dataHandler, orderHandler, teamHandler, catalogHandler, statsHandler)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: newRequestID,
	}))

	// Logger middleware
	s.echo.Use(s.requestLogger())

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.config.Security.AllowedOrigins(),
		AllowCredentials: s.config.Security.CORSAllowCredentials,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "If-Match"},
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete, http.MethodOptions},
		ExposeHeaders:    []string{"ETag", echo.HeaderXRequestID},
	}))

	// Embedded team photos make documents large
	s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	dataHandler *httpHandlers.WebsiteDataHandler,
	orderHandler *httpHandlers.OrderHandler,
	teamHandler *httpHandlers.TeamHandler,
	catalogHandler *httpHandlers.CatalogHandler,
	statsHandler *httpHandlers.StatsHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api")

	// Whole-document access used by the admin dashboard
	api.GET("/websiteData", dataHandler.GetWebsiteData)
	api.POST("/websiteData", dataHandler.UpdateWebsiteData)

	api.GET("/catalog", catalogHandler.GetCatalog)
	api.GET("/stats", statsHandler.GetStats)

	orderGroup := api.Group("/orders")
	orderGroup.GET("", orderHandler.ListOrders)
	orderGroup.POST("", orderHandler.CreateOrder)
	orderGroup.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
	orderGroup.DELETE("/:id", orderHandler.DeleteOrder)

	teamGroup := api.Group("/team")
	teamGroup.GET("", teamHandler.ListTeam)
	teamGroup.POST("", teamHandler.CreateTeamMember)
	teamGroup.PUT("/:id", teamHandler.UpdateTeamMember)
	teamGroup.DELETE("/:id", teamHandler.DeleteTeamMember)
	teamGroup.POST("/:id/move", teamHandler.MoveTeamMember)
}

// setupMetrics exposes the Prometheus registry and counts every request
func (s *Server) setupMetrics() {
	s.echo.Use(s.metricsMiddleware())
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Document store health check
	if err := s.store.Ping(c.Request().Context()); err != nil {
		status = "error"
		checks["store"] = map[string]interface{}{
			"status": "error",
			"source": s.store.Describe(),
			"error":  err.Error(),
		}
	} else {
		checks["store"] = map[string]interface{}{
			"status": "ok",
			"source": s.store.Describe(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "store_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start(address string) error {
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	s.logger.Infow("Starting server", "address", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error as JSON with a message field
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		// The request logger already handed this error over once
		if c.Response().Committed {
			return
		}

		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		var verrs entities.ValidationErrors
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = httpHandlers.MessageResponse{Message: m}
			} else {
				msg = he.Message
			}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if errors.As(err, &verrs) {
			code = http.StatusBadRequest
			msg = httpHandlers.ErrorResponse{Message: httpHandlers.MsgValidationFailed, Details: verrs}
		} else {
			msg = httpHandlers.MessageResponse{Message: http.StatusText(code)}
		}

		if code >= http.StatusInternalServerError {
			logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
				WithError(err).
				Errorw("Internal server error", "path", c.Request().URL.Path)

			if m, ok := msg.(httpHandlers.MessageResponse); ok && c.Echo().Debug {
				msg = httpHandlers.ErrorResponse{Message: m.Message, Details: err.Error()}
			}
		}

		// Send response
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, msg)
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}

// Package api exposes the salary dashboard over HTTP.
package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"golang.org/x/time/rate"

	"salarydash/internal/config"
	"salarydash/internal/logger"
)

// NewServer builds the echo instance with middleware and routes. The
// returned server answers 503 on data routes until h.SetStore is called.
func NewServer(cfg *config.Config, log *logger.Logger, h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLevel(cfg.Logging.Level))
	e.JSONSerializer = jsonSerializer{}
	e.Renderer = newPageRenderer()
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(requestLogger(log))
	if cfg.Server.RateLimit > 0 {
		store := middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimit))
		e.Use(middleware.RateLimiter(store))
	}

	h.RegisterRoutes(e)
	return e
}

func echoLevel(level string) gommonlog.Lvl {
	switch level {
	case "debug":
		return gommonlog.DEBUG
	case "warn":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	default:
		return gommonlog.INFO
	}
}

func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogRequestID: true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond),
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			log.WithRequest(v.RequestID).Infow("request", fields...)
			return nil
		},
	})
}

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"marketplace/pkg/metrics"
)

// Newはmiddleware込みのechoを組み立てる
func New(logger zerolog.Logger, m *metrics.ServerMetrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(requestLog(logger, m))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	return e
}

// アクセスログ＋リクエストメトリクスをまとめて記録する
func requestLog(logger zerolog.Logger, m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			status := c.Response().Status
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if m != nil {
				m.Requests.WithLabelValues(path, c.Request().Method, strconv.Itoa(status)).Inc()
				m.LatencyMS.WithLabelValues(path).Observe(float64(elapsed.Milliseconds()))
			}

			logger.Info().
				Str("method", c.Request().Method).
				Str("path", path).
				Int("status", status).
				Dur("elapsed", elapsed).
				Msg("request")
			return nil
		}
	}
}

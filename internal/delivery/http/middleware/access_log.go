package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobwise/internal/metrics"
	"jobwise/internal/pkg/logger"
)

type AccessLogMiddleware struct {
	logger *logrus.Logger
}

func NewAccessLogMiddleware(l *logrus.Logger) *AccessLogMiddleware {
	if l == nil {
		l = logger.Discard()
	}
	return &AccessLogMiddleware{logger: l}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("X-Request-ID", rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.RecordHTTPRequest(c.Method(), route, status, dur)

		m.logger.WithFields(logrus.Fields{
			"rid":     rid,
			"ip":      c.IP(),
			"method":  c.Method(),
			"path":    c.OriginalURL(),
			"status":  status,
			"role":    SessionFrom(c).Role(),
			"latency": dur.String(),
			"ua":      c.Get("User-Agent"),
		}).Info("HTTP access")

		return err
	}
}

func statusOf(err error) int {
	status, _, _ := normalizeError(err)
	return status
}

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/paperdrop/paperdrop/pkg/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
	requestLogKey   = "requestLogger"
)

// requestID assigns each request a UUID (or adopts the caller's) and
// hangs a request-scoped child logger on the context.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Set(requestLogKey, s.logger.With(requestIDKey, id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// loggerFrom returns the request-scoped logger set by the requestID
// middleware, falling back to the server logger.
func (s *Server) loggerFrom(c *gin.Context) *logging.Logger {
	if v, ok := c.Get(requestLogKey); ok {
		if l, ok := v.(*logging.Logger); ok {
			return l
		}
	}
	return s.logger
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.loggerFrom(c).Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond))
	}
}

func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.gateway.ObserveRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds())
	}
}

// bodyLimit caps request bodies so an oversized payload fails the JSON
// bind with 413 instead of buffering without bound.
func (s *Server) bodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > s.config.MaxBodyBytes {
			s.respondError(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxBodyBytes)
		c.Next()
	}
}

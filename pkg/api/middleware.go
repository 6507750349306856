package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// logRequests assigns every request an id and logs it once it has been handled.
func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		s.Logger.Infow("Handled request",
			zap.String(requestIDKey, id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func (s *Server) recoverPanic(c *gin.Context, recovered interface{}) {
	s.Logger.Errorw("Recovered from panic",
		zap.String(requestIDKey, c.GetString(requestIDKey)),
		zap.Any("panic", recovered),
		zap.Stack("stack"))

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func (s *Server) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// internalError logs err and responds with message only.
func (s *Server) internalError(c *gin.Context, err error, message string) {
	s.Logger.Errorw(message,
		zap.String(requestIDKey, c.GetString(requestIDKey)),
		zap.Error(err))

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

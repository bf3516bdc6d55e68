package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDCtxKey = "request_id"
	requestIDHeader = "X-Request-Id"
)

// HandleRequestIDMiddleware tags every request with a sortable
// unique id, echoed back in the response headers and attached to
// all handler log lines.
func (h *handlerImpl) HandleRequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to generate request id")
			c.Next()
			return
		}
		requestID = id.String()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

// requestLogger returns the handler logger scoped to the current request.
func (h *handlerImpl) requestLogger(c *gin.Context) zerolog.Logger {
	requestID := c.GetString(requestIDCtxKey)
	if requestID == "" {
		return h.logger
	}
	return h.logger.With().Str("request_id", requestID).Logger()
}

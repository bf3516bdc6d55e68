package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleHealthCheck(c *gin.Context) {
	err := h.pgPool.Ping(c)
	if err != nil {
		logger := h.requestLogger(c)
		logger.Error().
			Err(err).
			Msg("failed to ping postgres")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/ytagent/internal/config"
	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

const AgentKeyHeader = "X-Agent-Key"

// AgentKeyMiddleware rejects callers whose X-Agent-Key header does not equal
// the configured secret.
func AgentKeyMiddleware(cfg *config.AgentConfig) gin.HandlerFunc {
	secret := []byte(cfg.SecretKey)

	return func(c *gin.Context) {
		key := []byte(c.GetHeader(AgentKeyHeader))
		if subtle.ConstantTimeCompare(key, secret) == 1 {
			c.Next()
			return
		}

		appErr := utils.NewForbiddenError()
		utils.LogWarn(c.Request.Context(), "Rejected request with invalid agent key", utils.Fields{
			"ip":   c.ClientIP(),
			"code": appErr.Code,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, models.Failure(appErr.Message, nil))
	}
}

package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/armour_safety/internal/config"
	"github.com/sirupsen/logrus"
)

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу.
// Ключ берется из X-API-Key или из Authorization: Bearer
func APIKeyAuthMiddleware(cfg *config.Config, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithFields(logrus.Fields{
			"method":      "APIKeyAuth",
			"http_method": c.Request.Method,
			"path":        c.FullPath(),
		})

		apiKey := requestAPIKey(c)
		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if !knownAPIKey(cfg.APIKeys, apiKey) {
			log.WithField("api_key", maskAPIKey(apiKey)).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

func requestAPIKey(c *gin.Context) string {
	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		return apiKey
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// knownAPIKey сравнивает ключ со всеми настроенными за постоянное время
func knownAPIKey(keys []string, apiKey string) bool {
	found := 0
	for _, key := range keys {
		found |= subtle.ConstantTimeCompare([]byte(key), []byte(apiKey))
	}
	return found == 1
}

// maskAPIKey оставляет в логе только последние четыре символа ключа
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return "****" + apiKey[len(apiKey)-4:]
}

package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))

	// Частые запросы карты ограничиваются по IP, SOS-маршруты - нет
	lookups := protected.Group("")
	lookups.Use(RateLimitMiddleware(h.cfg.RateLimitRPS, h.cfg.RateLimitBurst, h.logger))
	{
		lookups.POST("/location/update", h.updateLocation)
		lookups.GET("/zones", h.listZones)
		lookups.GET("/community/nearby", h.nearby)
	}

	// Маршруты SOS-сессии
	sos := protected.Group("/sos")
	{
		sos.POST("/trigger", h.triggerSOS)
		sos.POST("/tick", h.tickSOS)
		sos.POST("/cancel", h.cancelSOS)
		sos.POST("/reset", h.resetSOS)
		sos.GET("/:user_id", h.getSession)
	}

	protected.GET("/session/timeline/:user_id", h.getTimeline)
}

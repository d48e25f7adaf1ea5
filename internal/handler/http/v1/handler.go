package v1

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/armour_safety/internal/config"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	riskService     service.RiskService
	alertService    service.AlertService
	timelineService service.TimelineService
	logger          *logrus.Logger
	validate     *validator.Validate
	cfg          *config.Config
}

func NewHandler(
	riskService service.RiskService,
	alertService service.AlertService,
	timelineService service.TimelineService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		riskService:     riskService,
		alertService:    alertService,
		timelineService: timelineService,
		logger:          logger,
		validate:     validator.New(),
		cfg:          cfg,
	}
}

// bindAndValidate разбирает тело запроса и проверяет его. При ошибке ответ уже записан.
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Update user location
// @Description Report the current user location and get the risk assessment for it. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body LocationUpdateRequest true "Location update request"
// @Success 200 {object} RiskResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/update [post]
func (h *Handler) updateLocation(c *gin.Context) {
	var input LocationUpdateRequest
	log := h.logger.WithField("method", "updateLocation")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	location := models.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}
	assessment, err := h.riskService.AssessLocation(c.Request.Context(), input.UserID, location)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to assess location in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToRiskResponse(*assessment))
}

// @Summary Get a list of risk zones
// @Description Get all known risk zones ordered by ID. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ZoneResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [get]
func (h *Handler) listZones(c *gin.Context) {
	log := h.logger.WithField("method", "listZones")

	zones, err := h.riskService.ListZones(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list zones from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToZoneResponses(zones))
}

// @Summary Find help nearby
// @Description Get volunteers and safe zones within the radius, nearest first. Requires API key.
// @Tags Community
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Radius in kilometers"
// @Success 200 {object} NearbyResponse
// @Failure 400 {object} map[string]string "Invalid coordinates or radius"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /community/nearby [get]
func (h *Handler) nearby(c *gin.Context) {
	log := h.logger.WithField("method", "nearby")

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", strconv.FormatFloat(h.cfg.VolunteerRadiusKm, 'f', -1, 64)), 64)
	if err != nil || radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
		return
	}
	location := models.Coordinate{Latitude: lat, Longitude: lng}

	volunteers, err := h.riskService.NearbyVolunteers(c.Request.Context(), location, radius)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to find volunteers in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	safeZones, err := h.riskService.NearbySafeZones(c.Request.Context(), location, radius)
	if err != nil {
		log.WithError(err).Error("Failed to find safe zones in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, NearbyResponse{
		RadiusKm:   radius,
		Volunteers: ModelsToVolunteerResponses(volunteers),
		SafeZones:  ModelsToZoneDistanceResponses(safeZones),
	})
}

// @Summary Trigger SOS
// @Description Start the SOS countdown. Without coordinates the last known location is used. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param trigger body TriggerRequest true "SOS trigger request"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]any "SOS already active"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/trigger [post]
func (h *Handler) triggerSOS(c *gin.Context) {
	var input TriggerRequest
	log := h.logger.WithField("method", "triggerSOS")

	if !h.bindAndValidate(c, log, &input) {
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be provided together"})
		return
	}

	var location *models.Coordinate
	if input.Latitude != nil {
		location = &models.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}
	}

	session, err := h.alertService.Trigger(c.Request.Context(), input.UserID, location, input.NetworkStatus)
	if err != nil {
		h.respondAlertError(c, log.WithField("user_id", input.UserID), err, session)
		return
	}

	c.JSON(http.StatusCreated, ModelToSessionResponse(session))
}

// @Summary Advance SOS countdown
// @Description Advance the countdown by one second. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param session body SessionRequest true "Session request"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]any "Session is not counting down"
// @Router /sos/tick [post]
func (h *Handler) tickSOS(c *gin.Context) {
	var input SessionRequest
	log := h.logger.WithField("method", "tickSOS")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	session, err := h.alertService.Tick(c.Request.Context(), input.UserID)
	if err != nil {
		h.respondAlertError(c, log.WithField("user_id", input.UserID), err, session)
		return
	}

	c.JSON(http.StatusOK, ModelToSessionResponse(session))
}

// @Summary Cancel SOS
// @Description Cancel the SOS during the countdown. Outside the countdown nothing changes and cancelled is false. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param session body SessionRequest true "Session request"
// @Success 200 {object} CancelResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sos/cancel [post]
func (h *Handler) cancelSOS(c *gin.Context) {
	var input SessionRequest
	log := h.logger.WithField("method", "cancelSOS")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	session, err := h.alertService.Cancel(c.Request.Context(), input.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotCancellable) {
			c.JSON(http.StatusOK, CancelResponse{Cancelled: false, Session: ModelToSessionResponse(session)})
			return
		}
		h.respondAlertError(c, log.WithField("user_id", input.UserID), err, session)
		return
	}

	c.JSON(http.StatusOK, CancelResponse{Cancelled: true, Session: ModelToSessionResponse(session)})
}

// @Summary Dismiss SOS session
// @Description Return a finished session to idle. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param session body SessionRequest true "Session request"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]any "Session is still active"
// @Router /sos/reset [post]
func (h *Handler) resetSOS(c *gin.Context) {
	var input SessionRequest
	log := h.logger.WithField("method", "resetSOS")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	session, err := h.alertService.Reset(c.Request.Context(), input.UserID)
	if err != nil {
		h.respondAlertError(c, log.WithField("user_id", input.UserID), err, session)
		return
	}

	c.JSON(http.StatusOK, ModelToSessionResponse(session))
}

// @Summary Get SOS session
// @Description Get the current SOS session of the user. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/{user_id} [get]
func (h *Handler) getSession(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "getSession").WithField("user_id", userID)

	session, err := h.alertService.GetSession(c.Request.Context(), userID)
	if err != nil {
		h.respondAlertError(c, log, err, session)
		return
	}

	c.JSON(http.StatusOK, ModelToSessionResponse(session))
}

// @Summary Get activity timeline
// @Description Get recent risk, zone and SOS events of the user, newest first. Requires API key.
// @Tags Session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Success 200 {object} TimelineResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /session/timeline/{user_id} [get]
func (h *Handler) getTimeline(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "getTimeline").WithField("user_id", userID)

	events, err := h.timelineService.Events(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to get timeline from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToTimelineResponse(userID, events))
}

// respondAlertError переводит ошибки сервиса оповещений в HTTP-ответ
func (h *Handler) respondAlertError(c *gin.Context, log *logrus.Entry, err error, session models.AlertSession) {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyActive):
		c.JSON(http.StatusConflict, gin.H{"error": "SOS already active", "session": ModelToSessionResponse(session)})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid session state", "session": ModelToSessionResponse(session)})
	case errors.Is(err, models.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	default:
		log.WithError(err).Error("Alert service failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationUpdateRequest DTO для обновления местоположения пользователя
// @Description DTO для обновления местоположения пользователя
type LocationUpdateRequest struct {
	UserID    string   `json:"user_id" validate:"required"`
	Latitude  *float64 `json:"lat" validate:"required,latitude"`
	Longitude *float64 `json:"lng" validate:"required,longitude"`
}

// TriggerRequest DTO для запуска SOS. Координаты необязательны, но передаются парой.
// @Description DTO для запуска SOS
type TriggerRequest struct {
	UserID        string   `json:"user_id" validate:"required"`
	Latitude      *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	NetworkStatus string   `json:"network_status,omitempty" validate:"omitempty,oneof=online offline"`
}

// SessionRequest DTO для действий над текущей сессией пользователя
// @Description DTO для tick/cancel/reset
type SessionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// CoordinateResponse DTO координаты
type CoordinateResponse struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// ZoneResponse DTO для ответа с информацией о зоне
// @Description DTO для ответа с информацией о зоне
type ZoneResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Location  CoordinateResponse `json:"location"`
	RiskScore int                `json:"risk_score"`
	Category  string             `json:"category"`
}

// ZoneDistanceResponse DTO зоны с расстоянием и направлением от точки запроса
type ZoneDistanceResponse struct {
	Zone           ZoneResponse `json:"zone"`
	DistanceMeters float64      `json:"distance_meters"`
	BearingDegrees float64      `json:"bearing_degrees"`
}

// RiskResponse DTO для ответа с оценкой риска
// @Description DTO для ответа с оценкой риска
type RiskResponse struct {
	Score             int                   `json:"score"`
	Band              string                `json:"band"`
	NearestZone       *ZoneDistanceResponse `json:"nearest_zone,omitempty"`
	NearestSafeZone   *ZoneDistanceResponse `json:"nearest_safe_zone,omitempty"`
	NearestDangerZone *ZoneDistanceResponse `json:"nearest_danger_zone,omitempty"`
}

// VolunteerResponse DTO волонтера рядом с пользователем
type VolunteerResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Location       CoordinateResponse `json:"location"`
	Online         bool               `json:"online"`
	Rating         float64            `json:"rating"`
	Verified       bool               `json:"verified"`
	DistanceMeters float64            `json:"distance_meters"`
}

// NearbyResponse DTO для ответа с помощью поблизости
// @Description DTO для ответа с волонтерами и безопасными зонами поблизости
type NearbyResponse struct {
	RadiusKm   float64                `json:"radius_km"`
	Volunteers []VolunteerResponse    `json:"volunteers"`
	SafeZones  []ZoneDistanceResponse `json:"safe_zones"`
}

// AckResponse DTO подтверждения бэкенда оповещений
type AckResponse struct {
	Success bool   `json:"success"`
	AlertID string `json:"alert_id"`
	Message string `json:"message"`
}

// SessionResponse DTO для ответа с состоянием SOS-сессии
// @Description DTO для ответа с состоянием SOS-сессии
type SessionResponse struct {
	ID                 *uuid.UUID          `json:"id,omitempty"`
	UserID             string              `json:"user_id"`
	State              string              `json:"state"`
	TriggeredAt        *time.Time          `json:"triggered_at,omitempty"`
	CountdownRemaining int                 `json:"countdown_remaining"`
	Location           *CoordinateResponse `json:"location,omitempty"`
	NetworkStatus      string              `json:"network_status,omitempty"`
	RiskContext        *RiskResponse       `json:"risk_context,omitempty"`
	Ack                *AckResponse        `json:"ack,omitempty"`
	FailureReason      string              `json:"failure_reason,omitempty"`
}

// CancelResponse DTO для ответа на отмену SOS
// @Description DTO для ответа на отмену SOS
type CancelResponse struct {
	Cancelled bool            `json:"cancelled"`
	Session   SessionResponse `json:"session"`
}

// TimelineEventResponse DTO события ленты активности
type TimelineEventResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	Time      time.Time  `json:"time"`
}

// TimelineResponse DTO для ответа с лентой активности
// @Description DTO для ответа с лентой активности пользователя, новые события первыми
type TimelineResponse struct {
	UserID string                  `json:"user_id"`
	Events []TimelineEventResponse `json:"events"`
}

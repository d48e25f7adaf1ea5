package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertState - состояние сессии SOS
type AlertState string

const (
	AlertStateIdle      AlertState = "idle"
	AlertStateCountdown AlertState = "countdown"
	AlertStateSending   AlertState = "sending"
	AlertStateSent      AlertState = "sent"
	AlertStateCancelled AlertState = "cancelled"
	AlertStateFailed    AlertState = "failed"
)

// IsTerminal сообщает, что из состояния можно выйти только через reset
func (s AlertState) IsTerminal() bool {
	return s == AlertStateSent || s == AlertStateCancelled || s == AlertStateFailed
}

// IsActive сообщает, что сессия еще не завершена
func (s AlertState) IsActive() bool {
	return s == AlertStateCountdown || s == AlertStateSending
}

const (
	AlertTypeSOS         = "SOS"
	NetworkStatusOnline  = "online"
	NetworkStatusOffline = "offline"
)

// AlertSession - жизненный цикл одного экстренного оповещения
type AlertSession struct {
	ID                   uuid.UUID      `json:"id"`
	UserID               string         `json:"user_id"`
	TriggeredAt          time.Time      `json:"triggered_at"`
	State                AlertState     `json:"state"`
	CountdownRemaining   int            `json:"countdown_remaining"`
	RiskContextAtTrigger RiskAssessment `json:"risk_context_at_trigger"`
	Location             Coordinate     `json:"location"`
	NetworkStatus        string         `json:"network_status"`
	Ack                  *AlertAck      `json:"ack,omitempty"`
	FailureReason        string         `json:"failure_reason,omitempty"`
}

// AlertPayload - тело запроса к бэкенду оповещений
type AlertPayload struct {
	UserID               string         `json:"user_id"`
	AlertType            string         `json:"alert_type"`
	NetworkStatus        string         `json:"network_status"`
	Location             Coordinate     `json:"location"`
	RiskContextAtTrigger RiskAssessment `json:"risk_context"`
}

// AlertAck - ответ бэкенда оповещений
type AlertAck struct {
	Success bool   `json:"success"`
	AlertID string `json:"alert_id"`
	Message string `json:"message"`
}

// AlertJob - единица передачи оповещения диспетчеру
type AlertJob struct {
	SessionID uuid.UUID    `json:"session_id"`
	Payload   AlertPayload `json:"payload"`
}

// DispatchResult - итог единственной попытки отправки
type DispatchResult struct {
	Success bool      `json:"success"`
	Ack     *AlertAck `json:"ack,omitempty"`
	Reason  string    `json:"reason,omitempty"`
}

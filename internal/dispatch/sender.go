// Package dispatch - граница отправки SOS-оповещений во внешний бэкенд.
// Каждое оповещение отправляется ровно одной попыткой, повторов нет.
package dispatch

//go:generate mockgen -source=sender.go -destination=mocks/mock_sender.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/shenikar/armour_safety/internal/config"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-Alert-Signature"
	maxAckBodyBytes = 1 << 20
)

// Sender выполняет одну сетевую попытку отправки оповещения
type Sender interface {
	Send(ctx context.Context, payload models.AlertPayload) (models.AlertAck, error)
}

// ResultHandler получает итог отправки обратно в автомат сессии
type ResultHandler interface {
	OnDispatchResult(ctx context.Context, userID string, sessionID uuid.UUID, result models.DispatchResult) error
}

// HTTPSender отправляет оповещение POST-запросом на ALERT_URL
type HTTPSender struct {
	url        string
	secret     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewHTTPSender создает отправителя с таймаутом из конфигурации
func NewHTTPSender(cfg *config.Config, logger *logrus.Logger) *HTTPSender {
	return &HTTPSender{
		url:    cfg.AlertURL,
		secret: cfg.AlertSecret,
		httpClient: &http.Client{
			Timeout: cfg.AlertTimeout,
		},
		logger: logger,
	}
}

// Send выполняет ровно одну попытку. Любой сбой транспорта, таймаут,
// не-2xx ответ или success=false возвращаются как ошибка, оборачивающая models.ErrDispatch.
func (s *HTTPSender) Send(ctx context.Context, payload models.AlertPayload) (models.AlertAck, error) {
	log := s.logger.WithFields(logrus.Fields{
		"component": "dispatch",
		"method":    "Send",
		"user_id":   payload.UserID,
	})

	if s.url == "" {
		log.Warn("Alert URL is not configured")
		return models.AlertAck{}, fmt.Errorf("%w: alert URL is not configured", models.ErrDispatch)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.AlertAck{}, fmt.Errorf("%w: failed to marshal alert payload: %v", models.ErrDispatch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return models.AlertAck{}, fmt.Errorf("%w: failed to create alert request: %v", models.ErrDispatch, err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если ALERT_SECRET задан
	if s.secret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(body, s.secret))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Alert request failed")
		return models.AlertAck{}, fmt.Errorf("%w: %v", models.ErrDispatch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status_code", resp.StatusCode).Error("Alert backend rejected request")
		return models.AlertAck{}, fmt.Errorf("%w: unexpected status code %d", models.ErrDispatch, resp.StatusCode)
	}

	var ack models.AlertAck
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAckBodyBytes)).Decode(&ack); err != nil {
		log.WithError(err).Error("Failed to decode alert acknowledgement")
		return models.AlertAck{}, fmt.Errorf("%w: failed to decode acknowledgement: %v", models.ErrDispatch, err)
	}
	if !ack.Success {
		log.WithField("message", ack.Message).Error("Alert backend reported failure")
		return ack, fmt.Errorf("%w: backend reported failure: %s", models.ErrDispatch, ack.Message)
	}

	log.WithField("alert_id", ack.AlertID).Info("Alert delivered")
	return ack, nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// deliver отправляет задание одной попыткой и сообщает итог обработчику
func deliver(ctx context.Context, sender Sender, handler ResultHandler, logger *logrus.Logger, job models.AlertJob) {
	log := logger.WithFields(logrus.Fields{
		"component":  "dispatch",
		"user_id":    job.Payload.UserID,
		"session_id": job.SessionID,
	})

	ack, err := sender.Send(ctx, job.Payload)
	result := models.DispatchResult{Success: err == nil}
	if ack.AlertID != "" || ack.Message != "" {
		result.Ack = &ack
	}
	if err != nil {
		result.Reason = err.Error()
	}

	if err := handler.OnDispatchResult(ctx, job.Payload.UserID, job.SessionID, result); err != nil {
		log.WithError(err).Warn("Dispatch result was not accepted")
	}
}

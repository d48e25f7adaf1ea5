package v1

import "github.com/shenikar/armour_safety/internal/models"

func coordinateToResponse(c models.Coordinate) CoordinateResponse {
	return CoordinateResponse{Latitude: c.Latitude, Longitude: c.Longitude}
}

// ModelToZoneResponse преобразует доменную модель зоны в DTO для ответа
func ModelToZoneResponse(z models.Zone) ZoneResponse {
	return ZoneResponse{
		ID:        z.ID,
		Name:      z.Name,
		Location:  coordinateToResponse(z.Coordinate),
		RiskScore: z.RiskScore,
		Category:  string(z.Category),
	}
}

// ModelsToZoneResponses преобразует слайс зон в слайс DTO
func ModelsToZoneResponses(zones []models.Zone) []ZoneResponse {
	responses := make([]ZoneResponse, len(zones))
	for i, z := range zones {
		responses[i] = ModelToZoneResponse(z)
	}
	return responses
}

func zoneDistanceToResponse(zd *models.ZoneDistance) *ZoneDistanceResponse {
	if zd == nil {
		return nil
	}
	return &ZoneDistanceResponse{
		Zone:           ModelToZoneResponse(zd.Zone),
		DistanceMeters: zd.DistanceMeters,
		BearingDegrees: zd.BearingDegrees,
	}
}

// ModelsToZoneDistanceResponses преобразует слайс зон с расстояниями в слайс DTO
func ModelsToZoneDistanceResponses(zones []models.ZoneDistance) []ZoneDistanceResponse {
	responses := make([]ZoneDistanceResponse, len(zones))
	for i := range zones {
		responses[i] = *zoneDistanceToResponse(&zones[i])
	}
	return responses
}

// ModelToRiskResponse преобразует оценку риска в DTO для ответа
func ModelToRiskResponse(a models.RiskAssessment) RiskResponse {
	return RiskResponse{
		Score:             a.Score,
		Band:              string(a.Band),
		NearestZone:       zoneDistanceToResponse(a.NearestZone),
		NearestSafeZone:   zoneDistanceToResponse(a.NearestSafeZone),
		NearestDangerZone: zoneDistanceToResponse(a.NearestDangerZone),
	}
}

// ModelsToVolunteerResponses преобразует волонтеров с расстояниями в слайс DTO
func ModelsToVolunteerResponses(volunteers []models.VolunteerDistance) []VolunteerResponse {
	responses := make([]VolunteerResponse, len(volunteers))
	for i, v := range volunteers {
		responses[i] = VolunteerResponse{
			ID:             v.Volunteer.ID,
			Name:           v.Volunteer.Name,
			Location:       coordinateToResponse(v.Volunteer.Coordinate),
			Online:         v.Volunteer.Online,
			Rating:         v.Volunteer.Rating,
			Verified:       v.Volunteer.Verified,
			DistanceMeters: v.DistanceMeters,
		}
	}
	return responses
}

// ModelToSessionResponse преобразует SOS-сессию в DTO для ответа.
// У Idle-сессии нет ни идентификатора, ни контекста срабатывания.
func ModelToSessionResponse(s models.AlertSession) SessionResponse {
	resp := SessionResponse{
		UserID:             s.UserID,
		State:              string(s.State),
		CountdownRemaining: s.CountdownRemaining,
		NetworkStatus:      s.NetworkStatus,
		FailureReason:      s.FailureReason,
	}
	if s.State == models.AlertStateIdle {
		return resp
	}

	id := s.ID
	triggeredAt := s.TriggeredAt
	location := coordinateToResponse(s.Location)
	riskContext := ModelToRiskResponse(s.RiskContextAtTrigger)
	resp.ID = &id
	resp.TriggeredAt = &triggeredAt
	resp.Location = &location
	resp.RiskContext = &riskContext
	if s.Ack != nil {
		resp.Ack = &AckResponse{
			Success: s.Ack.Success,
			AlertID: s.Ack.AlertID,
			Message: s.Ack.Message,
		}
	}
	return resp
}

// ModelsToTimelineResponse преобразует ленту событий в DTO для ответа
func ModelsToTimelineResponse(userID string, events []models.TimelineEvent) TimelineResponse {
	resp := TimelineResponse{
		UserID: userID,
		Events: make([]TimelineEventResponse, len(events)),
	}
	for i, e := range events {
		resp.Events[i] = TimelineEventResponse{
			ID:        e.ID,
			Type:      string(e.Type),
			Message:   e.Message,
			Status:    string(e.Status),
			SessionID: e.SessionID,
			Time:      e.Timestamp,
		}
	}
	return resp
}

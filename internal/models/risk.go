package models

// Band - уровень опасности, производный от оценки риска
type Band string

const (
	BandSafe    Band = "SAFE"
	BandCaution Band = "CAUTION"
	BandDanger  Band = "DANGER"
)

// ZoneDistance - зона и расстояние до нее от оцениваемой точки
type ZoneDistance struct {
	Zone           Zone    `json:"zone"`
	DistanceMeters float64 `json:"distance_meters"`
	BearingDegrees float64 `json:"bearing_degrees"`
}

// RiskAssessment - результат классификации точки. Не сохраняется.
type RiskAssessment struct {
	Score             int           `json:"score"`
	Band              Band          `json:"band"`
	NearestZone       *ZoneDistance `json:"nearest_zone,omitempty"`
	NearestSafeZone   *ZoneDistance `json:"nearest_safe_zone,omitempty"`
	NearestDangerZone *ZoneDistance `json:"nearest_danger_zone,omitempty"`
}

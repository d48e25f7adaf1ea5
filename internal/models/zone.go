package models

// ZoneCategory - тип объекта, которому соответствует зона
type ZoneCategory string

const (
	ZoneCategoryPolice      ZoneCategory = "police"
	ZoneCategoryHospital    ZoneCategory = "hospital"
	ZoneCategoryMarket      ZoneCategory = "market"
	ZoneCategoryResidential ZoneCategory = "residential"
	ZoneCategoryTransit     ZoneCategory = "transit"
	ZoneCategoryArea        ZoneCategory = "area"
)

// Zone - именованная точка риска. RiskScore в диапазоне 0..100.
type Zone struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Coordinate Coordinate   `json:"coordinate"`
	RiskScore  int          `json:"risk_score"`
	Category   ZoneCategory `json:"category"`
}

package models

// Volunteer представляет волонтера, готового откликнуться на вызов
type Volunteer struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
	Online     bool       `json:"online"`
	Rating     float64    `json:"rating"`
	Verified   bool       `json:"verified"`
}

// VolunteerDistance - волонтер и расстояние до него
type VolunteerDistance struct {
	Volunteer      Volunteer `json:"volunteer"`
	DistanceMeters float64   `json:"distance_meters"`
}

package models

// Station is a recovery station shown on the portal map. Stations are
// reference data seeded into PostgreSQL at startup.
type Station struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

package climate

// Observation is one periodic weather record for a county. Measurement
// dates are stored as strings ("2024-06" or "2024-06-15") exactly as
// submitted; the service does no date arithmetic on them.
type Observation struct {
	CountyState        string  `json:"county_state" db:"county_state"`
	MeasurementDate    string  `json:"measurement_date" db:"measurement_date"`
	MinTemp            float64 `json:"min_temp" db:"min_temp"`
	MaxTemp            float64 `json:"max_temp" db:"max_temp"`
	Precipitation      float64 `json:"precipitation" db:"precipitation"`
	Humidity           float64 `json:"humidity" db:"humidity"`
	Wind               float64 `json:"wind" db:"wind"`
	SolarRadiation     float64 `json:"solar_radiation" db:"solar_radiation"`
	Evapotranspiration float64 `json:"evapotranspiration" db:"evapotranspiration"`
	Elevation          float64 `json:"elevation" db:"elevation"`
}

package soil

// Profile holds the static soil attributes recorded per county.
type Profile struct {
	CountyState        string  `json:"county_state" db:"county_state"`
	OrganicCarbonStock float64 `json:"soil_organic_carbon_stock" db:"soil_organic_carbon_stock"`
	BulkDensity        float64 `json:"bulk_density" db:"bulk_density"`
	Nitrogen           float64 `json:"nitrogen" db:"nitrogen"`
	OrganicCarbon      float64 `json:"soil_organic_carbon" db:"soil_organic_carbon"`
	PH                 float64 `json:"ph" db:"ph"`
}

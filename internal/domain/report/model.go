// Package report defines the row shapes produced by the aggregate
// reporting queries.
package report

// CropClimateRow pairs a user's average yield for a crop with the
// average precipitation of the counties the crop was grown in.
type CropClimateRow struct {
	CropType         string  `json:"crop_type" db:"crop_type"`
	AvgYield         float64 `json:"avg_yield" db:"avg_yield"`
	AvgPrecipitation float64 `json:"avg_precipitation" db:"avg_precipitation"`
}

// EnvAverages joins soil and climate data for a county.
type EnvAverages struct {
	CountyState      string  `json:"county_state" db:"county_state"`
	AvgPrecipitation float64 `json:"avg_precipitation" db:"avg_precipitation"`
	AvgPH            float64 `json:"avg_ph" db:"avg_ph"`
}

// CropComparisonRow is one row returned by the GetCropComparison stored
// procedure: a user's average yield for a crop against the admin
// baseline for the same crop in the same county.
type CropComparisonRow struct {
	CropType      string  `json:"crop_type" db:"crop_type"`
	UserAvgYield  float64 `json:"user_avg_yield" db:"user_avg_yield"`
	AdminAvgYield float64 `json:"admin_avg_yield" db:"admin_avg_yield"`
}

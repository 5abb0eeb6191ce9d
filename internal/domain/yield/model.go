package yield

// Record is one crop-yield submission. Identity is the natural key
// (Username, CropType, MeasurementDate, CountyState); ID is a surrogate
// assigned by the database and used only by the delete-by-id path.
type Record struct {
	ID              int64   `json:"id,omitempty" db:"id"`
	Username        string  `json:"username" db:"username"`
	CropType        string  `json:"crop_type" db:"crop_type"`
	MeasurementDate string  `json:"measurement_date" db:"measurement_date"`
	CountyState     string  `json:"county_state" db:"county_state"`
	YieldAcre       float64 `json:"yieldacre" db:"yieldacre"`
}

// Key is the natural key addressing a single Record.
type Key struct {
	Username        string `json:"username"`
	CropType        string `json:"crop_type"`
	MeasurementDate string `json:"measurement_date"`
	CountyState     string `json:"county_state"`
}

// AuditEntry is one row of the append-only yield audit log. Rows are
// written by database triggers; the application only reads them.
type AuditEntry struct {
	ActionType      string  `json:"action_type" db:"action_type"`
	ActionTimestamp string  `json:"action_timestamp" db:"action_timestamp"`
	Username        string  `json:"username" db:"username"`
	CropType        string  `json:"crop_type" db:"crop_type"`
	MeasurementDate string  `json:"measurement_date" db:"measurement_date"`
	CountyState     string  `json:"county_state" db:"county_state"`
	YieldAcre       float64 `json:"yieldacre" db:"yieldacre"`
}

package county

// County is one entry of the pre-seeded county/state reference list,
// identified by its free-text "county state" key, e.g. "will il".
type County struct {
	CountyState string `json:"county_state" db:"county_state"`
}

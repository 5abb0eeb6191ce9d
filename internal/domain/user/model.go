package user

// Account is a registered farmer account. PasswordHash holds the bcrypt
// hash; it is stripped before the account leaves the service layer.
type Account struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password"`
	CountyState  string `json:"county_state" db:"county_state"`
}

package domain

// User is a verified identity record. Credential issuance happens outside the
// service; only the resolved user id ever reaches the core.
type User struct {
	ID              string
	Email           string
	Name            string
	Credit          int
	Address         string
	DetailedAddress string
	Latitude        *float64
	Longitude       *float64
}

package domain

// Store is read-only catalog data.
type Store struct {
	ID       string
	Name     string
	Category string
	Location string
	Latitude *float64
	// Longitude pairs with Latitude; both nil when the store was never geocoded.
	Longitude *float64
	// MinimumOrder is the smallest combined item total the store accepts.
	MinimumOrder int
	DeliveryTip  int
	// DeliveryDelay is the estimated delivery time in minutes.
	DeliveryDelay int
}

type Menu struct {
	ID      string
	StoreID string
	Name    string
	Price   int
}
